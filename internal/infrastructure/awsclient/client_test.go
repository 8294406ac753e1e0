package awsclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-class-triggers/internal/config"
)

func TestLoad_StaticCredentials(t *testing.T) {
	cfg := &config.Config{
		AWSRegion:      "eu-west-1",
		AWSAccessKeyID: "test",
		AWSSecretKey:   "secret",
	}

	awsCfg, err := Load(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", awsCfg.Region)

	creds, err := awsCfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
}

func TestBaseEndpoint(t *testing.T) {
	assert.Nil(t, BaseEndpoint(&config.Config{}))

	ep := BaseEndpoint(&config.Config{AWSEndpointURL: "http://localhost:4566"})
	require.NotNil(t, ep)
	assert.Equal(t, "http://localhost:4566", *ep)
}
