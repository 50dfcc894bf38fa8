package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"customer-groups-api/internal/domain"
	"customer-groups-api/internal/service"
	"customer-groups-api/internal/transport/http/ez"
	"customer-groups-api/internal/validate"
)

type groupIn struct {
	GroupAdminID     *uint   `json:"group_admin_id"`
	GroupName        *string `json:"group_name"`
	GroupDescription *string `json:"group_description"`
}

type groupPatchIn struct {
	GroupName        *string `json:"group_name"`
	GroupDescription *string `json:"group_description"`
}

// RegisterGroupRoutes 分组路由，全部要 token
func RegisterGroupRoutes(authed *gin.RouterGroup, gs *service.GroupService) {
	ezAuth := ez.New(authed)

	// POST /groups/
	ez.RegisterAction(ezAuth, ez.Action[groupIn, gin.H]{
		Method:  http.MethodPost,
		Path:    "/groups/",
		Binder:  ez.BindJSON,
		Success: http.StatusCreated,
		Handler: func(c *gin.Context, in *groupIn) (gin.H, error) {
			if in.GroupAdminID == nil || in.GroupName == nil || in.GroupDescription == nil {
				return nil, ez.BadRequest("Invalid data. Data is required!")
			}
			fields := []validate.Field{
				{Kind: "group_name", Value: in.GroupName},
				{Kind: "group_description", Value: in.GroupDescription},
			}
			if msg := validate.ErrorString(fields); msg != "" {
				return nil, ez.BadRequest(msg)
			}
			g, err := gs.Create(c.Request.Context(), *in.GroupAdminID, *in.GroupName, *in.GroupDescription)
			if err != nil {
				return nil, mapGroupErr(err, *in.GroupAdminID)
			}
			return gin.H{"message": "Group created", "group": g}, nil
		},
	})

	// GET /groups/:group_id
	ez.RegisterAction(ezAuth, ez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/groups/:group_id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := uintParam(c, "group_id")
			if err != nil {
				return nil, err
			}
			g, err := gs.Get(c.Request.Context(), id)
			if err != nil {
				return nil, mapGroupErr(err, 0)
			}
			return gin.H{"message": "The group", "group": g}, nil
		},
	})

	// PATCH /groups/:group_id  名称和描述必须一起给，整体替换
	ez.RegisterAction(ezAuth, ez.Action[groupPatchIn, gin.H]{
		Method: http.MethodPatch,
		Path:   "/groups/:group_id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *groupPatchIn) (gin.H, error) {
			id, err := uintParam(c, "group_id")
			if err != nil {
				return nil, err
			}
			fields := []validate.Field{
				{Kind: "group_name", Value: in.GroupName},
				{Kind: "group_description", Value: in.GroupDescription},
			}
			if msg := validate.ErrorString(fields); msg != "" {
				return nil, ez.BadRequest(msg)
			}
			g, err := gs.Update(c.Request.Context(), id, *in.GroupName, *in.GroupDescription)
			if err != nil {
				return nil, mapGroupErr(err, 0)
			}
			return gin.H{"message": "The updated group", "group": g}, nil
		},
	})

	// DELETE /groups/:group_id
	ez.RegisterAction(ezAuth, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/groups/:group_id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := uintParam(c, "group_id")
			if err != nil {
				return nil, err
			}
			if err := gs.Delete(c.Request.Context(), id); err != nil {
				return nil, mapGroupErr(err, 0)
			}
			return gin.H{"message": "Group successfully deleted."}, nil
		},
	})

	// GET /groups/user/:user_id/?sort=&order=
	// 排序参数先过白名单再碰库
	ez.RegisterAction(ezAuth, ez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/groups/user/:user_id/",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			userID, err := uintParam(c, "user_id")
			if err != nil {
				return nil, err
			}
			column, ok := domain.GroupSortColumns[c.Query("sort")]
			if !ok {
				return nil, ez.BadRequest("Invalid sort. Use 'group_name', 'group_description', or 'created_at'.")
			}
			descending, err := parseOrder(c.Query("order"))
			if err != nil {
				return nil, err
			}
			groups, err := gs.ListByUser(c.Request.Context(), userID, column, descending)
			if err != nil {
				return nil, mapGroupErr(err, userID)
			}
			if groups == nil {
				groups = []domain.Group{}
			}
			return gin.H{"message": "All the groups of the user", "groups": groups}, nil
		},
	})
}

// 分组相关错误 → HTTP；userID 只在 admin 不存在的文案里用
func mapGroupErr(err error, userID uint) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return ez.NotFound(fmt.Sprintf("User with user_id %d does not exist.", userID))
	case errors.Is(err, domain.ErrGroupNotFound):
		return ez.NotFound("Group not found for the given group_id.")
	case errors.Is(err, domain.ErrDuplicateGroup):
		return ez.BadRequest("Group with the same admin, name and description already exists.")
	}
	return err
}
