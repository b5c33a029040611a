package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-restaurant-ordering/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// toolFunc is one entry of the MCP dispatch table: raw params in, result out.
type toolFunc func(ctx context.Context, params json.RawMessage) (interface{}, error)

// MCPController exposes a fixed set of repository calls as named tools behind
// a single dispatch endpoint.
type MCPController struct {
	tools map[string]toolFunc
}

func NewMCPController(products *ProductController, orders *OrderController, reservations *ReservationController) *MCPController {
	ctrl := &MCPController{}
	ctrl.tools = map[string]toolFunc{
		"searchProducts": func(ctx context.Context, params json.RawMessage) (interface{}, error) {
			var p struct {
				Query       string `json:"query"`
				Category_id string `json:"category_id"`
			}
			if err := unmarshalParams(params, &p); err != nil {
				return nil, err
			}
			return products.Search(ctx, p.Query, p.Category_id)
		},
		"getProductDetails": func(ctx context.Context, params json.RawMessage) (interface{}, error) {
			var p struct {
				Product_id string `json:"product_id"`
			}
			if err := unmarshalParams(params, &p); err != nil {
				return nil, err
			}
			if p.Product_id == "" {
				return nil, fmt.Errorf("product_id is required")
			}
			return products.ByID(ctx, p.Product_id)
		},
		"getCategories": func(ctx context.Context, params json.RawMessage) (interface{}, error) {
			return products.Categories(ctx)
		},
		"getUserOrders": func(ctx context.Context, params json.RawMessage) (interface{}, error) {
			var p struct {
				User_id string `json:"user_id"`
			}
			if err := unmarshalParams(params, &p); err != nil {
				return nil, err
			}
			if p.User_id == "" {
				return nil, fmt.Errorf("user_id is required")
			}
			return orders.Find(ctx, bson.M{"user_id": p.User_id})
		},
		"createOrder": func(ctx context.Context, params json.RawMessage) (interface{}, error) {
			var request OrderRequest
			if err := unmarshalParams(params, &request); err != nil {
				return nil, err
			}
			if err := validate.Struct(&request); err != nil {
				return nil, err
			}
			return orders.Create(ctx, request)
		},
		"getAvailableTables": func(ctx context.Context, params json.RawMessage) (interface{}, error) {
			var p struct {
				Date       string `json:"date"`
				Start_time string `json:"start_time"`
				End_time   string `json:"end_time"`
			}
			if err := unmarshalParams(params, &p); err != nil {
				return nil, err
			}
			if p.Date == "" || p.Start_time == "" || p.End_time == "" {
				return nil, fmt.Errorf("date, start_time and end_time are required")
			}
			return reservations.AvailableTables(ctx, p.Date, p.Start_time, p.End_time)
		},
		"createReservation": func(ctx context.Context, params json.RawMessage) (interface{}, error) {
			var reservation models.Reservation
			if err := unmarshalParams(params, &reservation); err != nil {
				return nil, err
			}
			if err := validate.Struct(&reservation); err != nil {
				return nil, err
			}
			return reservations.Create(ctx, reservation)
		},
	}
	return ctrl
}

func unmarshalParams(params json.RawMessage, target interface{}) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, target); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

func (ctrl *MCPController) ToolNames() []string {
	names := make([]string, 0, len(ctrl.tools))
	for name := range ctrl.tools {
		names = append(names, name)
	}
	return names
}

func (ctrl *MCPController) Dispatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var body struct {
			Tool   string          `json:"tool"`
			Params json.RawMessage `json:"params"`
		}
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		tool, ok := ctrl.tools[body.Tool]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown tool %q", body.Tool)})
			return
		}
		result, err := tool(ctx, body.Params)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": result})
	}
}
