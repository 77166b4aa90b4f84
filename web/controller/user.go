// Package controller provides the HTTP request handlers for the usergate
// identity API.
package controller

import (
	"errors"
	"net/http"

	"usergate/database/model"
	"usergate/logger"
	"usergate/web/middleware"
	"usergate/web/service"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// CreateUserForm represents the user creation request structure. The role is
// taken as supplied by the caller, not re-derived.
type CreateUserForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserForm carries the only mutable field of a user.
type UpdateUserForm struct {
	Role string `json:"role"`
}

// UserController handles the identity endpoints: user CRUD and login.
type UserController struct {
	userService *service.UserService
}

// NewUserController creates a new UserController and initializes its routes.
// Deletion is the authorization-checked operation: it runs behind the trusted
// header gate plus the admin role check. The remaining operations enforce no
// authorization, matching the system this replaces.
func NewUserController(g *gin.RouterGroup, provider middleware.AuthProvider) *UserController {
	a := &UserController{userService: service.NewUserService()}

	users := g.Group("/users")
	{
		users.GET("", a.list)
		users.GET("/:username", a.getOne)
		users.POST("", a.create)
		users.PUT("/:username", a.update)
		users.POST("/login", a.login)

		users.DELETE("/:username",
			middleware.TrustedAuth(provider),
			middleware.RoleRequired(model.RoleAdmin),
			a.delete,
		)
	}

	return a
}

// list returns all users in insertion order.
func (a *UserController) list(c *gin.Context) {
	users, err := a.userService.AllUsers()
	if err != nil {
		jsonMsgObj(c, http.StatusInternalServerError, "list users", nil, err)
		return
	}
	jsonObj(c, users, nil)
}

// getOne returns the matching user or 404.
func (a *UserController) getOne(c *gin.Context) {
	username := c.Param("username")
	user, err := a.userService.GetUser(username)
	if errors.Is(err, service.ErrUserNotFound) {
		pureJsonMsg(c, http.StatusNotFound, false, "user not found")
		return
	} else if err != nil {
		jsonMsgObj(c, http.StatusInternalServerError, "get user", nil, err)
		return
	}
	jsonObj(c, user, nil)
}

// create adds a new user with the supplied role. Missing username or
// password is a validation failure; a taken username is a conflict.
func (a *UserController) create(c *gin.Context) {
	var form CreateUserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		pureJsonMsg(c, http.StatusInternalServerError, false, "invalid user data")
		return
	}
	if form.Username == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusInternalServerError, false, "username and password are required")
		return
	}

	user, err := a.userService.AddUser(form.Username, form.Password, form.Role)
	if errors.Is(err, service.ErrUserExists) {
		pureJsonMsg(c, http.StatusConflict, false, "user already exists")
		return
	} else if err != nil {
		jsonMsgObj(c, http.StatusInternalServerError, "create user", nil, err)
		return
	}

	logger.Info("user created:", user.Username)
	c.JSON(http.StatusCreated, user)
}

// update copies only the role field onto the existing record.
func (a *UserController) update(c *gin.Context) {
	username := c.Param("username")

	var form UpdateUserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid user data")
		return
	}

	user, err := a.userService.UpdateUserRole(username, form.Role)
	if errors.Is(err, service.ErrUserNotFound) {
		pureJsonMsg(c, http.StatusNotFound, false, "user not found")
		return
	} else if err != nil {
		jsonMsgObj(c, http.StatusInternalServerError, "update user", nil, err)
		return
	}

	logger.Infof("user %s role updated to %q", user.Username, user.Role)
	jsonObj(c, user, nil)
}

// delete removes the target user. The gate and role middlewares have already
// rejected unauthenticated (401) and non-admin (403) callers.
func (a *UserController) delete(c *gin.Context) {
	username := c.Param("username")

	if _, err := a.userService.GetUser(username); errors.Is(err, service.ErrUserNotFound) {
		logger.Warning("delete of unknown user:", username)
		pureJsonMsg(c, http.StatusNotFound, false, "user not found")
		return
	} else if err != nil {
		jsonMsgObj(c, http.StatusInternalServerError, "delete user", nil, err)
		return
	}

	if err := a.userService.DeleteUser(username); err != nil {
		jsonMsgObj(c, http.StatusInternalServerError, "delete user", nil, err)
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	logger.Infof("user %s deleted by %s", username, principal.Name)
	jsonMsg(c, "user deleted", nil)
}

// login verifies the supplied credentials and, on success, issues the two
// trusted headers the authorization gate consumes on later requests.
func (a *UserController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusUnauthorized, false, "invalid login data")
		return
	}

	user, err := a.userService.Authenticate(form.Username, form.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		logger.Warningf("failed login for %q from %s", form.Username, getRemoteIp(c))
		pureJsonMsg(c, http.StatusUnauthorized, false, "wrong username or password")
		return
	} else if err != nil {
		jsonMsgObj(c, http.StatusInternalServerError, "login", nil, err)
		return
	}

	role := service.ClassifyRole(user.Role)
	redirect := "user.html"
	if role == model.RoleAdmin {
		redirect = "admin.html"
	}

	logger.Infof("%s logged in from %s", user.Username, getRemoteIp(c))
	c.Header(middleware.HeaderUsername, user.Username)
	c.Header(middleware.HeaderRole, role)
	jsonMsgObj(c, http.StatusOK, "login successful", gin.H{
		"username": user.Username,
		"role":     role,
		"redirect": redirect,
	}, nil)
}
