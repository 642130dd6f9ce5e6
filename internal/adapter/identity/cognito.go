package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ctypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"sba-portal/internal/domain/apperr"
	"sba-portal/internal/domain/auth"
)

// RoleAttribute is the user pool custom attribute carrying the portal role.
const RoleAttribute = "custom:role"

// CognitoAPI is the subset of the user pool client the portal calls.
type CognitoAPI interface {
	SignUp(ctx context.Context, in *cognitoidentityprovider.SignUpInput, opts ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error)
	InitiateAuth(ctx context.Context, in *cognitoidentityprovider.InitiateAuthInput, opts ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
	GlobalSignOut(ctx context.Context, in *cognitoidentityprovider.GlobalSignOutInput, opts ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GlobalSignOutOutput, error)
}

type Cognito struct {
	api      CognitoAPI
	clientID string
}

func NewCognito(api CognitoAPI, clientID string) *Cognito {
	return &Cognito{api: api, clientID: clientID}
}

func (c *Cognito) SignUp(ctx context.Context, in auth.SignUpInput) (string, error) {
	attrs := []ctypes.AttributeType{
		{Name: aws.String("email"), Value: aws.String(in.Email)},
		{Name: aws.String(RoleAttribute), Value: aws.String(string(in.Role))},
	}
	if in.FirstName != "" {
		attrs = append(attrs, ctypes.AttributeType{Name: aws.String("given_name"), Value: aws.String(in.FirstName)})
	}
	if in.LastName != "" {
		attrs = append(attrs, ctypes.AttributeType{Name: aws.String("family_name"), Value: aws.String(in.LastName)})
	}

	out, err := c.api.SignUp(ctx, &cognitoidentityprovider.SignUpInput{
		ClientId:       aws.String(c.clientID),
		Username:       aws.String(in.Email),
		Password:       aws.String(in.Password),
		UserAttributes: attrs,
	})
	if err != nil {
		return "", mapSignUpError(err)
	}
	return aws.ToString(out.UserSub), nil
}

func mapSignUpError(err error) error {
	var userExists *ctypes.UsernameExistsException
	if errors.As(err, &userExists) {
		return auth.ErrAccountExists
	}
	var invalidPw *ctypes.InvalidPasswordException
	if errors.As(err, &invalidPw) {
		return fmt.Errorf("%w: %s", apperr.ErrInvalidInput, aws.ToString(invalidPw.Message))
	}
	var invalidParam *ctypes.InvalidParameterException
	if errors.As(err, &invalidParam) {
		return fmt.Errorf("%w: %s", apperr.ErrInvalidInput, aws.ToString(invalidParam.Message))
	}
	return fmt.Errorf("cognito sign up: %w", err)
}

func (c *Cognito) SignIn(ctx context.Context, email, password string) (*auth.Tokens, error) {
	out, err := c.api.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: ctypes.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(c.clientID),
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return nil, mapSignInError(err)
	}
	if out.ChallengeName != "" {
		return nil, fmt.Errorf("%w: sign-in challenge %s is not supported", apperr.ErrUnauthorized, out.ChallengeName)
	}
	res := out.AuthenticationResult
	if res == nil || res.IdToken == nil || res.AccessToken == nil {
		return nil, auth.ErrInvalidCredentials
	}
	return &auth.Tokens{
		IDToken:      aws.ToString(res.IdToken),
		AccessToken:  aws.ToString(res.AccessToken),
		RefreshToken: aws.ToString(res.RefreshToken),
		ExpiresIn:    time.Duration(res.ExpiresIn) * time.Second,
	}, nil
}

func mapSignInError(err error) error {
	var notAuthorized *ctypes.NotAuthorizedException
	var notFound *ctypes.UserNotFoundException
	if errors.As(err, &notAuthorized) || errors.As(err, &notFound) {
		return auth.ErrInvalidCredentials
	}
	var notConfirmed *ctypes.UserNotConfirmedException
	if errors.As(err, &notConfirmed) {
		return auth.ErrNotConfirmed
	}
	return fmt.Errorf("cognito sign in: %w", err)
}

// SignOut revokes every token issued to the session. An access token the
// pool no longer accepts counts as already signed out.
func (c *Cognito) SignOut(ctx context.Context, accessToken string) error {
	_, err := c.api.GlobalSignOut(ctx, &cognitoidentityprovider.GlobalSignOutInput{
		AccessToken: aws.String(accessToken),
	})
	var notAuthorized *ctypes.NotAuthorizedException
	if err != nil && !errors.As(err, &notAuthorized) {
		return fmt.Errorf("cognito sign out: %w", err)
	}
	return nil
}
