package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRegisterRequest_Validate(t *testing.T) {
	valid := UserRegisterRequest{Username: "alice_01", Email: "alice@example.com", Password: "Passw0rdOk"}
	require.NoError(t, valid.Validate())

	cases := map[string]struct {
		req   UserRegisterRequest
		field string
	}{
		"username symbols": {UserRegisterRequest{Username: "al ice!", Email: valid.Email, Password: valid.Password}, "username"},
		"missing email":    {UserRegisterRequest{Username: valid.Username, Password: valid.Password}, "email"},
		"bad email":        {UserRegisterRequest{Username: valid.Username, Email: "nope", Password: valid.Password}, "email"},
		"short password":   {UserRegisterRequest{Username: valid.Username, Email: valid.Email, Password: "Ab1"}, "password"},
		"no digit":         {UserRegisterRequest{Username: valid.Username, Email: valid.Email, Password: "Passwordok"}, "password"},
		"no upper":         {UserRegisterRequest{Username: valid.Username, Email: valid.Email, Password: "passw0rdok"}, "password"},
		"punctuation":      {UserRegisterRequest{Username: valid.Username, Email: valid.Email, Password: "Passw0rd!!"}, "password"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.req.Validate()
			require.Error(t, err)
			assert.Contains(t, ValidationDetails(err), tc.field)
		})
	}
}

func TestUserLoginRequest_LegacyEmailField(t *testing.T) {
	req := UserLoginRequest{Email: "alice@example.com", Password: "x"}
	assert.Equal(t, "alice@example.com", req.LoginIdentifier())
	assert.NoError(t, req.Validate())

	err := UserLoginRequest{Password: "x"}.Validate()
	require.Error(t, err)
	assert.Contains(t, ValidationDetails(err), "identifier")
}

func TestUserUpdateRequest_Validate(t *testing.T) {
	assert.NoError(t, UserUpdateRequest{}.Validate())

	empty := ""
	err := UserUpdateRequest{Username: &empty}.Validate()
	require.Error(t, err)
	assert.Contains(t, ValidationDetails(err), "username")

	weak := "password"
	err = UserUpdateRequest{Password: &weak}.Validate()
	require.Error(t, err)
	assert.Contains(t, ValidationDetails(err), "password")
}

func TestPrivilegeUpdateRequest_RequiresFlag(t *testing.T) {
	assert.Error(t, PrivilegeUpdateRequest{}.Validate())
	no := false
	assert.NoError(t, PrivilegeUpdateRequest{IsAdmin: &no}.Validate())
}

func TestPasswordResetConfirmRequest_TokenMustBeUUID(t *testing.T) {
	err := PasswordResetConfirmRequest{Token: "abc", Password: "Passw0rdOk"}.Validate()
	require.Error(t, err)
	assert.Contains(t, ValidationDetails(err), "token")

	assert.NoError(t, PasswordResetConfirmRequest{
		Token:    "5f1f6e0e-3c55-4d7e-9a77-4e3c1c8b8e0a",
		Password: "Passw0rdOk",
	}.Validate())
}

func TestQuestionRequest_Validate(t *testing.T) {
	req := QuestionRequest{Title: "Two Sum", Description: "Find two numbers", Difficulty: "Easy", Topics: []string{"Arrays"}}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Two Sum", req.ToDomain().Title)

	req.Difficulty = "Impossible"
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, ValidationDetails(err), "difficulty")

	err = QuestionRequest{}.Validate()
	details := ValidationDetails(err)
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "description")
}

func TestValidationDetails_NonValidationError(t *testing.T) {
	assert.Nil(t, ValidationDetails(assert.AnError))
}
