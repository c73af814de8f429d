package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/services"
)

type ApplianceController struct {
	Appliances *services.ApplianceService
}

func NewApplianceController(appliances *services.ApplianceService) *ApplianceController {
	return &ApplianceController{Appliances: appliances}
}

// applianceForm is the multipart body of create and update. The receipt
// travels as the "receipt" file part.
type applianceForm struct {
	Name                 string `form:"name" binding:"required,max=100"`
	Brand                string `form:"brand" binding:"max=50"`
	Model                string `form:"model" binding:"max=50"`
	PurchaseDate         string `form:"purchase_date" binding:"required"`
	WarrantyPeriodMonths int    `form:"warranty_period_months" binding:"min=0,max=1200"`
	PurchasePrice        string `form:"purchase_price" binding:"required"`
	RemoveReceipt        bool   `form:"remove_receipt"`
}

// bindAppliance parses the form. The returned closer releases the receipt
// file and is never nil.
func bindAppliance(c *gin.Context) (services.ApplianceInput, func(), error) {
	noop := func() {}
	var form applianceForm
	if err := c.ShouldBind(&form); err != nil {
		return services.ApplianceInput{}, noop, err
	}

	purchase, err := time.Parse(time.DateOnly, form.PurchaseDate)
	if err != nil {
		return services.ApplianceInput{}, noop, &services.ValidationError{Field: "purchase_date", Message: "use YYYY-MM-DD"}
	}
	price, err := decimal.NewFromString(form.PurchasePrice)
	if err != nil {
		return services.ApplianceInput{}, noop, &services.ValidationError{Field: "purchase_price", Message: "must be a number"}
	}

	in := services.ApplianceInput{
		Name:                 form.Name,
		Brand:                form.Brand,
		Model:                form.Model,
		PurchaseDate:         purchase,
		WarrantyPeriodMonths: form.WarrantyPeriodMonths,
		PurchasePrice:        price,
		RemoveReceipt:        form.RemoveReceipt,
	}

	fh, err := c.FormFile("receipt")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return in, noop, nil
	case err != nil:
		return services.ApplianceInput{}, noop, err
	case fh.Size == 0:
		return in, noop, nil
	}
	f, err := fh.Open()
	if err != nil {
		return services.ApplianceInput{}, noop, err
	}
	in.Receipt = &services.ReceiptUpload{Filename: fh.Filename, Size: fh.Size, Body: f}
	return in, func() { _ = f.Close() }, nil
}

func (ac *ApplianceController) List(c *gin.Context) {
	list, err := ac.Appliances.List(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ac *ApplianceController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := ac.Appliances.Get(c.Request.Context(), actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (ac *ApplianceController) Create(c *gin.Context) {
	in, closeReceipt, err := bindAppliance(c)
	defer closeReceipt()
	if err != nil {
		ac.bindError(c, err)
		return
	}

	a, err := ac.Appliances.Create(c.Request.Context(), actor(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (ac *ApplianceController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	in, closeReceipt, err := bindAppliance(c)
	defer closeReceipt()
	if err != nil {
		ac.bindError(c, err)
		return
	}

	a, err := ac.Appliances.Update(c.Request.Context(), actor(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (ac *ApplianceController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ac.Appliances.Delete(c.Request.Context(), actor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appliance deleted"})
}

// Expiring accepts an optional ?days= window (default 31).
func (ac *ApplianceController) Expiring(c *gin.Context) {
	days := 0
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
			return
		}
		days = n
	}
	list, err := ac.Appliances.Expiring(c.Request.Context(), actor(c), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ac *ApplianceController) Expired(c *gin.Context) {
	list, err := ac.Appliances.Expired(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ac *ApplianceController) bindError(c *gin.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
