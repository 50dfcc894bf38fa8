package router

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"customer-groups-api/internal/domain"
	"customer-groups-api/internal/service"
	"customer-groups-api/internal/transport/http/ez"
	resp "customer-groups-api/internal/transport/http/response"
	"customer-groups-api/internal/validate"
)

type customerIn struct {
	GroupID   *uint   `json:"group_id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Country   *string `json:"country"`
	City      *string `json:"city"`
	Birthday  *string `json:"birthday"`
}

// 必填项齐了就逐字段校验，通过后换成领域对象
func (in *customerIn) toCustomer() (*domain.Customer, error) {
	if in.GroupID == nil || in.FirstName == nil || in.LastName == nil || in.Email == nil {
		return nil, ez.BadRequest("Invalid data. Data is required!")
	}
	fields := []validate.Field{
		{Kind: "first_name", Value: in.FirstName},
		{Kind: "last_name", Value: in.LastName},
		{Kind: "email", Value: in.Email},
		{Kind: "country", Value: in.Country},
		{Kind: "city", Value: in.City},
		{Kind: "birthday", Value: in.Birthday},
	}
	if msg := validate.ErrorString(fields); msg != "" {
		return nil, ez.BadRequest(msg)
	}
	c := &domain.Customer{
		GroupID:   *in.GroupID,
		FirstName: *in.FirstName,
		LastName:  *in.LastName,
		Email:     *in.Email,
		Country:   in.Country,
		City:      in.City,
	}
	if in.Birthday != nil {
		d, err := domain.ParseDate(*in.Birthday)
		if err != nil {
			return nil, ez.BadRequest("Invalid birthday. Use the YYYY-MM-DD format and a date not in the future.")
		}
		c.Birthday = &d
	}
	return c, nil
}

// RegisterCustomerRoutes 客户路由，全部要 token
func RegisterCustomerRoutes(authed *gin.RouterGroup, cs *service.CustomerService) {
	ezAuth := ez.New(authed)

	// POST /customers/?size=one|list
	// size 决定请求体是单个对象还是数组，分支手动绑定
	authed.POST("/customers/", func(c *gin.Context) {
		switch c.Query("size") {
		case "one":
			handleCreateOne(c, cs)
		case "list":
			handleCreateList(c, cs)
		default:
			c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "Invalid size. Use 'one', or 'list'."))
		}
	})

	// GET /customers/:customer_id  详情带派生 age
	ez.RegisterAction(ezAuth, ez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/customers/:customer_id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := uintParam(c, "customer_id")
			if err != nil {
				return nil, err
			}
			out, err := cs.GetWithAge(c.Request.Context(), id, time.Now())
			if err != nil {
				return nil, mapCustomerErr(err, 0)
			}
			return gin.H{"message": "The customer", "customer": out}, nil
		},
	})

	// PATCH /customers/:customer_id  整体替换，group_id 保持原值
	ez.RegisterAction(ezAuth, ez.Action[customerIn, gin.H]{
		Method: http.MethodPatch,
		Path:   "/customers/:customer_id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *customerIn) (gin.H, error) {
			id, err := uintParam(c, "customer_id")
			if err != nil {
				return nil, err
			}
			if in.GroupID == nil {
				// PATCH 不改所属分组，占位让 toCustomer 过必填检查
				zero := uint(0)
				in.GroupID = &zero
			}
			cust, err := in.toCustomer()
			if err != nil {
				return nil, err
			}
			cust.ID = id
			updated, err := cs.Update(c.Request.Context(), cust)
			if err != nil {
				return nil, mapCustomerErr(err, 0)
			}
			return gin.H{"message": "The updated customer", "customer": updated}, nil
		},
	})

	// DELETE /customers/:customer_id
	ez.RegisterAction(ezAuth, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/customers/:customer_id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := uintParam(c, "customer_id")
			if err != nil {
				return nil, err
			}
			if err := cs.Delete(c.Request.Context(), id); err != nil {
				return nil, mapCustomerErr(err, 0)
			}
			return gin.H{"message": "Customer successfully deleted."}, nil
		},
	})

	// GET /customers/group/:group_id/?sort=&order=&age=
	// 三个参数独立校验，全过才碰库
	ez.RegisterAction(ezAuth, ez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/customers/group/:group_id/",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			groupID, err := uintParam(c, "group_id")
			if err != nil {
				return nil, err
			}
			column, ok := domain.CustomerSortColumns[c.Query("sort")]
			if !ok {
				return nil, ez.BadRequest("Invalid sort. Use 'first_name', 'last_name', 'email', 'country', 'city', or 'birthday'.")
			}
			descending, err := parseOrder(c.Query("order"))
			if err != nil {
				return nil, err
			}
			age := c.Query("age")
			if age != "include" && age != "uninclude" {
				return nil, ez.BadRequest("Invalid age. Use 'include' or 'uninclude'.")
			}
			customers, err := cs.ListByGroup(c.Request.Context(), groupID, column, descending)
			if err != nil {
				return nil, mapCustomerErr(err, groupID)
			}
			if age == "include" {
				now := time.Now()
				withAge := make([]domain.CustomerWithAge, 0, len(customers))
				for _, cust := range customers {
					withAge = append(withAge, cust.WithAge(now))
				}
				return gin.H{"message": "All the customers of the group", "customers": withAge}, nil
			}
			if customers == nil {
				customers = []domain.Customer{}
			}
			return gin.H{"message": "All the customers of the group", "customers": customers}, nil
		},
	})
}

func handleCreateOne(c *gin.Context, cs *service.CustomerService) {
	var in customerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "Invalid data. Data is required!"))
		return
	}
	cust, err := in.toCustomer()
	if err != nil {
		writeActionErr(c, err)
		return
	}
	created, err := cs.CreateOne(c.Request.Context(), cust)
	if err != nil {
		writeActionErr(c, mapCustomerErr(err, cust.GroupID))
		return
	}
	c.JSON(http.StatusCreated, resp.Created(gin.H{"message": "Customer created", "customer": created}))
}

func handleCreateList(c *gin.Context, cs *service.CustomerService) {
	var ins []customerIn
	if err := c.ShouldBindJSON(&ins); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "Invalid data. Data is required!"))
		return
	}
	batch := make([]domain.Customer, 0, len(ins))
	for i := range ins {
		cust, err := ins[i].toCustomer()
		if err != nil {
			writeActionErr(c, err)
			return
		}
		batch = append(batch, *cust)
	}
	var groupID uint
	if len(batch) > 0 {
		groupID = batch[0].GroupID
	}
	created, err := cs.CreateBatch(c.Request.Context(), batch)
	if err != nil {
		writeActionErr(c, mapCustomerErr(err, groupID))
		return
	}
	c.JSON(http.StatusCreated, resp.Created(gin.H{"message": "Customers created", "customers": created}))
}

// writeActionErr 手写 handler 里复用 Action 的错误映射
func writeActionErr(c *gin.Context, err error) {
	var ae *ez.AErr
	if errors.As(err, &ae) {
		c.JSON(ae.Code, resp.Error(ae.Code, ae.Error()))
		return
	}
	c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError,
		"An unexpected error occurred. Please try again later."))
}

// 客户相关错误 → HTTP；groupID 只在分组不存在的文案里用
func mapCustomerErr(err error, groupID uint) error {
	var ve *service.ValidationError
	switch {
	case errors.Is(err, domain.ErrGroupNotFound):
		if groupID > 0 {
			return ez.NotFound(fmt.Sprintf("Group with group_id %d does not exist.", groupID))
		}
		return ez.NotFound("Group not found for the given group_id.")
	case errors.Is(err, domain.ErrCustomerNotFound):
		return ez.NotFound("Customer not found for the given customer_id.")
	case errors.Is(err, domain.ErrDuplicateCustomer):
		return ez.BadRequest("Customer with the same email and group_id already exists.")
	case errors.As(err, &ve):
		return ez.BadRequest(ve.Msg)
	}
	return err
}
