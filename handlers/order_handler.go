package handlers

import (
	"net/http"
	"strings"
	"time"

	"eathub/notify"
	"eathub/respond"
	"eathub/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// publish sends ev in the background; failures are only logged.
func publish(c *gin.Context, notifier notify.Notifier, ev notify.Event) {
	ctx := c.Request.Context()
	go notify.Dispatch(ctx, notifier, ev)
}

//CreateOrderHandler places an order for a guest or a signed-in customer
func CreateOrderHandler(c *gin.Context, db *gorm.DB, notifier notify.Notifier) {
	var in services.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.BadRequest(c, err)
		return
	}
	in.UserID = actingUserID(c)

	now := time.Now()
	result, err := services.CreateOrder(c, db, in, now)
	if err != nil {
		respond.Err(c, err)
		return
	}

	publish(c, notifier, notify.OrderEvent(notify.EventOrderCreated, result.Order, now))
	respond.OK(c, http.StatusCreated, result)
}

func GetOrderHandler(c *gin.Context, db *gorm.DB) {
	order, err := services.GetOrder(c, db, strings.TrimSpace(c.Param("orderNumber")))
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, http.StatusOK, order)
}

//GetOrderListHandler pages through orders, newest first
func GetOrderListHandler(c *gin.Context, db *gorm.DB) {
	limit, ok := queryInt(c, "limit", 50)
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return
	}

	orders, total, err := services.ListOrders(c, db, services.OrderFilter{
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
	})
}

func UpdateOrderStatusHandler(c *gin.Context, db *gorm.DB, notifier notify.Notifier) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	order, err := services.UpdateOrderStatus(c, db, strings.TrimSpace(c.Param("orderNumber")), req.Status)
	if err != nil {
		respond.Err(c, err)
		return
	}

	publish(c, notifier, notify.OrderEvent(notify.EventOrderStatusChanged, order, time.Now()))
	respond.OK(c, http.StatusOK, order)
}
