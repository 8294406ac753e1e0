package cognito

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/go-class-triggers/internal/domain"
)

// adminAPI is the slice of the Cognito client the AccountDeleter uses.
type adminAPI interface {
	AdminDeleteUser(ctx context.Context, params *cip.AdminDeleteUserInput, optFns ...func(*cip.Options)) (*cip.AdminDeleteUserOutput, error)
}

// AccountDeleter removes users from a Cognito user pool. The user id is the
// pool username.
type AccountDeleter struct {
	client adminAPI
	poolID string
}

// NewAccountDeleter builds a deleter on top of an AWS config. endpoint may be nil.
func NewAccountDeleter(awsCfg aws.Config, endpoint *string, poolID string) *AccountDeleter {
	client := cip.NewFromConfig(awsCfg, func(o *cip.Options) {
		if endpoint != nil {
			o.BaseEndpoint = endpoint
		}
	})
	return &AccountDeleter{client: client, poolID: poolID}
}

func (d *AccountDeleter) Delete(ctx context.Context, userID string) error {
	_, err := d.client.AdminDeleteUser(ctx, &cip.AdminDeleteUserInput{
		UserPoolId: aws.String(d.poolID),
		Username:   aws.String(userID),
	})
	if err != nil {
		return fmt.Errorf("cognito delete %s: %w", userID, classify(err))
	}
	return nil
}

func classify(err error) error {
	var (
		userNotFound *types.UserNotFoundException
		invalidParam *types.InvalidParameterException
		notAuth      *types.NotAuthorizedException
		poolMissing  *types.ResourceNotFoundException
		tooMany      *types.TooManyRequestsException
		internal     *types.InternalErrorException
	)
	switch {
	case errors.As(err, &userNotFound):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case errors.As(err, &invalidParam):
		return fmt.Errorf("%w: %w", domain.ErrRejected, err)
	case errors.As(err, &notAuth), errors.As(err, &poolMissing):
		// A missing pool is a deployment fault, not a vanished user.
		return fmt.Errorf("%w: %w", domain.ErrForbidden, err)
	case errors.As(err, &tooMany), errors.As(err, &internal):
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	default:
		return err
	}
}
