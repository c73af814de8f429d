package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/services"
)

type ServiceRecordController struct {
	Records *services.ServiceRecordService
}

func NewServiceRecordController(records *services.ServiceRecordService) *ServiceRecordController {
	return &ServiceRecordController{Records: records}
}

type serviceRecordReq struct {
	ServiceDate   string           `json:"service_date" binding:"required"`
	VendorName    string           `json:"vendor_name" binding:"required"`
	VendorContact string           `json:"vendor_contact" binding:"required"`
	Notes         string           `json:"notes"`
	Cost          *decimal.Decimal `json:"cost" binding:"required"`
}

func (req serviceRecordReq) input() (services.ServiceRecordInput, error) {
	day, err := time.Parse(time.DateOnly, req.ServiceDate)
	if err != nil {
		return services.ServiceRecordInput{}, &services.ValidationError{Field: "service_date", Message: "use YYYY-MM-DD"}
	}
	return services.ServiceRecordInput{
		ServiceDate:   day,
		VendorName:    req.VendorName,
		VendorContact: req.VendorContact,
		Notes:         req.Notes,
		Cost:          *req.Cost,
	}, nil
}

func (sc *ServiceRecordController) bind(c *gin.Context) (services.ServiceRecordInput, bool) {
	var req serviceRecordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return services.ServiceRecordInput{}, false
	}
	in, err := req.input()
	if err != nil {
		respondError(c, err)
		return services.ServiceRecordInput{}, false
	}
	return in, true
}

func (sc *ServiceRecordController) List(c *gin.Context) {
	applianceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := sc.Records.List(c.Request.Context(), actor(c), applianceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (sc *ServiceRecordController) Get(c *gin.Context) {
	applianceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	recordID, ok := pathID(c, "recordID")
	if !ok {
		return
	}
	rec, err := sc.Records.Get(c.Request.Context(), actor(c), applianceID, recordID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (sc *ServiceRecordController) Create(c *gin.Context) {
	applianceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	in, ok := sc.bind(c)
	if !ok {
		return
	}
	rec, err := sc.Records.Create(c.Request.Context(), actor(c), applianceID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (sc *ServiceRecordController) Update(c *gin.Context) {
	applianceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	recordID, ok := pathID(c, "recordID")
	if !ok {
		return
	}
	in, ok := sc.bind(c)
	if !ok {
		return
	}
	rec, err := sc.Records.Update(c.Request.Context(), actor(c), applianceID, recordID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (sc *ServiceRecordController) Delete(c *gin.Context) {
	applianceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	recordID, ok := pathID(c, "recordID")
	if !ok {
		return
	}
	if err := sc.Records.Delete(c.Request.Context(), actor(c), applianceID, recordID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service record deleted"})
}
