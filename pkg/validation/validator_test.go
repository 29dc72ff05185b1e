package validation

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,pwd"`
	Role     string   `json:"role" binding:"omitempty,role"`
	Status   string   `json:"status" binding:"omitempty,learningstatus"`
	Tags     []string `json:"tags" binding:"omitempty,min=1,dive,required"`
}

func TestToDetails(t *testing.T) {
	Init()
	err := binding.Validator.ValidateStruct(&sample{Email: "nope", Password: "123", Role: "root", Status: "Done"})
	require.Error(t, err)

	details := ToDetails(err)
	require.Equal(t, map[string]string{
		"email":    "must be a valid email",
		"password": "must be at least 6 characters long",
		"role":     "must be one of: owner, admin, viewer",
		"status":   "must be one of: In Progress, Completed",
	}, details)
	require.Equal(t,
		"email must be a valid email, password must be at least 6 characters long, role must be one of: owner, admin, viewer, status must be one of: In Progress, Completed",
		Summary(details))
}

func TestToDetailsAcceptsValid(t *testing.T) {
	Init()
	err := binding.Validator.ValidateStruct(&sample{Email: "a@b.co", Password: "123456", Status: "In Progress"})
	require.NoError(t, err)
	require.Nil(t, ToDetails(nil))
}

func TestToDetailsJSON(t *testing.T) {
	var v sample
	err := json.Unmarshal([]byte(`{"email":`), &v)
	require.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}
