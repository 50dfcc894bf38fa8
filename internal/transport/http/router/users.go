package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"customer-groups-api/internal/domain"
	"customer-groups-api/internal/service"
	"customer-groups-api/internal/transport/http/ez"
	resp "customer-groups-api/internal/transport/http/response"
	"customer-groups-api/internal/validate"
)

type authIn struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

type userPatchIn struct {
	InputType string  `json:"input_type"`
	NewInput  *string `json:"new_input"`
}

// RegisterUserRoutes 用户相关路由；列表/注册/登录走公共分组，其余要 token
func RegisterUserRoutes(pub, authed *gin.RouterGroup, us *service.UserService) {
	ezPub := ez.New(pub)
	ezAuth := ez.New(authed)

	// GET /users/?action=list|amount
	ez.RegisterAction(ezPub, ez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/users/",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			switch c.Query("action") {
			case "list":
				users, err := us.List(c.Request.Context())
				if err != nil {
					return nil, err
				}
				if users == nil {
					users = []domain.User{}
				}
				return gin.H{"message": "Retrieve all users", "users": users}, nil
			case "amount":
				n, err := us.Amount(c.Request.Context())
				if err != nil {
					return nil, err
				}
				return gin.H{"message": "Retrieve amount of users", "amount": n}, nil
			default:
				return nil, ez.BadRequest("Invalid action. Use 'list' or 'amount'.")
			}
		},
	})

	// POST /users/auth/?action=signup|login
	// 注册成功 201、登录成功 200，状态随分支走，不套 Action
	pub.POST("/users/auth/", func(c *gin.Context) {
		action := c.Query("action")
		if action == "" {
			c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "Missing 'action' query parameter."))
			return
		}
		var in authIn
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "Invalid data. Data is required!"))
			return
		}
		switch action {
		case "signup":
			handleSignup(c, us, in)
		case "login":
			handleLogin(c, us, in)
		default:
			c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "Invalid action. Use 'signup' or 'login'."))
		}
	})

	// GET /users/:user_id
	ez.RegisterAction(ezAuth, ez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/users/:user_id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := uintParam(c, "user_id")
			if err != nil {
				return nil, err
			}
			u, err := us.Get(c.Request.Context(), id)
			if err != nil {
				return nil, mapUserErr(err, id)
			}
			return gin.H{"message": "The user", "user": u}, nil
		},
	})

	// PATCH /users/:user_id  body: {input_type, new_input}
	ez.RegisterAction(ezAuth, ez.Action[userPatchIn, gin.H]{
		Method: http.MethodPatch,
		Path:   "/users/:user_id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *userPatchIn) (gin.H, error) {
			id, err := uintParam(c, "user_id")
			if err != nil {
				return nil, err
			}
			u, err := us.UpdateField(c.Request.Context(), id, in.InputType, in.NewInput)
			if err != nil {
				return nil, mapUserErr(err, id)
			}
			return gin.H{"message": "User updated", "user": u}, nil
		},
	})

	// DELETE /users/:user_id
	ez.RegisterAction(ezAuth, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/users/:user_id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := uintParam(c, "user_id")
			if err != nil {
				return nil, err
			}
			if err := us.Delete(c.Request.Context(), id); err != nil {
				return nil, mapUserErr(err, id)
			}
			return gin.H{"message": "User successfully deleted."}, nil
		},
	})
}

func handleSignup(c *gin.Context, us *service.UserService, in authIn) {
	fields := []validate.Field{
		{Kind: "first_name", Value: in.FirstName},
		{Kind: "last_name", Value: in.LastName},
		{Kind: "email", Value: in.Email},
		{Kind: "password", Value: in.Password},
	}
	if msg := validate.ErrorString(fields); msg != "" {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, msg))
		return
	}
	u, err := us.Signup(c.Request.Context(), *in.FirstName, *in.LastName, *in.Email, *in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			c.JSON(http.StatusConflict, resp.Error(resp.CodeConflict,
				"A user with that email already exists. Please try another email."))
			return
		}
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError,
			"An unexpected error occurred. Please try again later."))
		return
	}
	c.JSON(http.StatusCreated, resp.Created(gin.H{
		"message": "User signed up",
		"user":    gin.H{"user_id": u.ID, "email": u.Email},
	}))
}

func handleLogin(c *gin.Context, us *service.UserService, in authIn) {
	fields := []validate.Field{
		{Kind: "email", Value: in.Email},
		{Kind: "password", Value: in.Password},
	}
	if msg := validate.ErrorString(fields); msg != "" {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, msg))
		return
	}
	token, u, err := us.Login(c.Request.Context(), *in.Email, *in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError,
			"An unexpected error occurred. Please try again later."))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{
		"message": "User logged in",
		"token":   token,
		"user":    gin.H{"user_id": u.ID, "email": u.Email},
	}))
}

// 用户相关错误 → HTTP
func mapUserErr(err error, id uint) error {
	var ve *service.ValidationError
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return ez.NotFound(fmt.Sprintf("User with user_id %d does not exist.", id))
	case errors.Is(err, domain.ErrEmailTaken):
		return ez.Conflict("A user with that email already exists. Please try another email.")
	case errors.Is(err, service.ErrUnknownField):
		return ez.BadRequest(err.Error())
	case errors.As(err, &ve):
		return ez.BadRequest(ve.Msg)
	}
	return err
}
