package httpserver

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hk-storefront/internal/domain"
	"hk-storefront/internal/mailer"
	"hk-storefront/internal/newsletter"
	"hk-storefront/internal/payfast"
)

type newsletterRequest struct {
	Email string `json:"email" binding:"required"`
}

func newsletterHandler(svc newsletterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req newsletterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email required"})
			return
		}
		if err := svc.Subscribe(c.Request.Context(), req.Email); err != nil {
			if errors.Is(err, newsletter.ErrInvalidEmail) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid email address"})
				return
			}
			if errors.Is(err, domain.ErrRemoteUnavailable) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "signup temporarily unavailable"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "signup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

type mailRequest struct {
	Form    string            `json:"form" binding:"required"`
	Name    string            `json:"name" binding:"required"`
	Email   string            `json:"email" binding:"required,email"`
	Phone   string            `json:"phone"`
	Message string            `json:"message"`
	Extras  map[string]string `json:"extras"`
}

func mailHandler(sender mailSender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req mailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "form, name and a valid email are required"})
			return
		}
		if !sender.Configured() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "mail transport not configured"})
			return
		}
		err := sender.Send(mailer.Message{
			Form:    req.Form,
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Message: req.Message,
			Extras:  req.Extras,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "mail dispatch failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// payfastNotifyHandler acks the payment gateway's webhook. The gateway
// retries on anything but a 200, so parse failures are logged and swallowed.
func payfastNotifyHandler(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
		if err != nil {
			logger.Printf("payfast notify: read body: %v", err)
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		notification, err := payfast.ParseNotification(c.ContentType(), body)
		if err != nil {
			logger.Printf("payfast notify: unparseable payload: %v", err)
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		logger.Printf("payfast notify: payment %s status %s amount %s",
			notification.PFPaymentID, notification.PaymentStatus, notification.AmountGross)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
