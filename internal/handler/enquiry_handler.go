package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitecms/internal/service"
)

type enquiryRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"max=30"`
	Company         string `json:"company" binding:"max=150"`
	Subject         string `json:"subject" binding:"max=200"`
	Message         string `json:"message" binding:"required,min=10,max=5000"`
	ServiceInterest string `json:"serviceInterest" binding:"max=150"`
	Source          string `json:"source" binding:"max=100"`
}

type enquiryUpdateRequest struct {
	Status *string `json:"status" binding:"omitempty,oneof=new in_progress resolved archived"`
	Notes  *string `json:"notes" binding:"omitempty,max=5000"`
}

// CreateEnquiry 接收公开的联系表单提交
func (a *API) CreateEnquiry(c *gin.Context) {
	var payload enquiryRequest
	if !bind(c, &payload) {
		return
	}

	item, err := a.enquiries.Create(service.EnquiryInput{
		Name:            payload.Name,
		Email:           payload.Email,
		Phone:           payload.Phone,
		Company:         payload.Company,
		Subject:         payload.Subject,
		Message:         payload.Message,
		ServiceInterest: payload.ServiceInterest,
		Source:          payload.Source,
		IPAddress:       c.ClientIP(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Thank you, we will be in touch shortly",
		"id":      item.ID,
	})
}

// ListEnquiries 返回联系表单记录
func (a *API) ListEnquiries(c *gin.Context) {
	result, err := a.enquiries.List(service.EnquiryFilter{
		Search:  c.Query("search"),
		Status:  c.Query("status"),
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "perPage"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetEnquiry 获取单条记录
func (a *API) GetEnquiry(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	item, err := a.enquiries.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateEnquiry 修改处理状态或备注
func (a *API) UpdateEnquiry(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var payload enquiryUpdateRequest
	if !bind(c, &payload) {
		return
	}
	item, err := a.enquiries.Update(id, service.EnquiryUpdate{Status: payload.Status, Notes: payload.Notes})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteEnquiry 删除记录
func (a *API) DeleteEnquiry(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := a.enquiries.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Enquiry deleted"})
}
