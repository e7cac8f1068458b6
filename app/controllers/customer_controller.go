package controllers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/PiyawatK/SubTrack/app/models"
	"github.com/PiyawatK/SubTrack/app/repository"
	"github.com/PiyawatK/SubTrack/internal/pkg/billing"
	"github.com/PiyawatK/SubTrack/internal/pkg/database"
)

// customerResponse is a customer together with its derived lifecycle status.
// The status is recomputed on every read and never stored.
type customerResponse struct {
	models.Customer
	Status billing.Status `json:"status"`
}

func toCustomerResponse(c models.Customer, now time.Time) customerResponse {
	return customerResponse{
		Customer: c,
		Status:   billing.ClassifyStatus(c.ExpiryDate, now),
	}
}

// HandleListCustomers returns all customers with derived status, optionally
// filtered by a free-text query and/or a status value (ACTIVE, EXPIRING,
// EXPIRED, or ALL).
func HandleListCustomers(c *fiber.Ctx) error {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	status := c.Query("status", "ALL")

	repo := repository.GetGlobalFactory().GetCustomerRepository()
	customers, err := repo.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load customers"})
	}

	now := time.Now()
	out := make([]customerResponse, 0, len(customers))
	for _, customer := range customers {
		resp := toCustomerResponse(customer, now)

		if query != "" && !matchesQuery(&customer, query) {
			continue
		}
		if status != "ALL" && string(resp.Status) != status {
			continue
		}
		out = append(out, resp)
	}
	return c.JSON(out)
}

func matchesQuery(customer *models.Customer, query string) bool {
	for _, field := range []string{customer.Name, customer.Phone, customer.LineID, customer.AccountNo} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

type createCustomerRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	LineID          string `json:"line_id"`
	AccountNo       string `json:"account_no"`
	BrokerName      string `json:"broker_name"`
	TradingViewUser string `json:"tradingview_user"`
	PlanType        string `json:"plan_type"`
	ExpiryDate      string `json:"expiry_date"`
	OwnerID         *uint  `json:"owner_id"`
	Note            string `json:"note"`
}

// HandleCreateCustomer registers a new customer. The NEW billing event is
// appended in the same transaction; the Telegram notification is best-effort.
func HandleCreateCustomer(c *fiber.Ctx) error {
	var req createCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
	}

	customer := &models.Customer{
		Name:            req.Name,
		Phone:           strings.TrimSpace(req.Phone),
		LineID:          strings.TrimSpace(req.LineID),
		AccountNo:       req.AccountNo,
		BrokerName:      strings.TrimSpace(req.BrokerName),
		TradingViewUser: strings.TrimSpace(req.TradingViewUser),
		PlanType:        strings.TrimSpace(req.PlanType),
		OwnerID:         req.OwnerID,
		Note:            req.Note,
	}
	if req.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "expiry_date must be YYYY-MM-DD"})
		}
		customer.ExpiryDate = &expiry
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	if err := svc.RegisterCustomer(c.Context(), customer); err != nil {
		switch {
		case errors.Is(err, billing.ErrNameRequired),
			errors.Is(err, billing.ErrAccountNoRequired),
			errors.Is(err, billing.ErrExpiryDateRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create customer"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(*customer, time.Now()))
}

// HandleGetCustomer returns one customer by ID with derived status.
func HandleGetCustomer(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid customer id"})
	}

	repo := repository.GetGlobalFactory().GetCustomerRepository()
	customer, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Customer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load customer"})
	}
	return c.JSON(toCustomerResponse(*customer, time.Now()))
}

type updateCustomerRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	LineID          *string `json:"line_id"`
	BrokerName      *string `json:"broker_name"`
	TradingViewUser *string `json:"tradingview_user"`
	PlanType        *string `json:"plan_type"`
	ExpiryDate      *string `json:"expiry_date"`
	OwnerID         *uint   `json:"owner_id"`
	Note            *string `json:"note"`
}

// HandleUpdateCustomer edits customer fields. Expiry changes here are manual
// corrections; they do not touch the ledger. Renewals go through the extend
// endpoint instead.
func HandleUpdateCustomer(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid customer id"})
	}

	var req updateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
	}

	repo := repository.GetGlobalFactory().GetCustomerRepository()
	customer, err := repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Customer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load customer"})
	}

	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.LineID != nil {
		customer.LineID = strings.TrimSpace(*req.LineID)
	}
	if req.BrokerName != nil {
		customer.BrokerName = strings.TrimSpace(*req.BrokerName)
	}
	if req.TradingViewUser != nil {
		customer.TradingViewUser = strings.TrimSpace(*req.TradingViewUser)
	}
	if req.PlanType != nil {
		customer.PlanType = strings.TrimSpace(*req.PlanType)
	}
	if req.OwnerID != nil {
		customer.OwnerID = req.OwnerID
	}
	if req.Note != nil {
		customer.Note = *req.Note
	}
	if req.ExpiryDate != nil {
		expiry, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "expiry_date must be YYYY-MM-DD"})
		}
		customer.ExpiryDate = &expiry
	}

	if err := customer.Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}
	if err := repo.Update(customer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update customer"})
	}
	return c.JSON(toCustomerResponse(*customer, time.Now()))
}

// HandleDeleteCustomer soft deletes a customer. Ledger entries stay: the
// ledger is append-only and past revenue does not disappear with the record.
func HandleDeleteCustomer(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid customer id"})
	}

	repo := repository.GetGlobalFactory().GetCustomerRepository()
	if _, err := repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Customer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load customer"})
	}
	if err := repo.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete customer"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type extendRequest struct {
	Months int `json:"months"`
}

// HandleExtendCustomer renews a subscription by N calendar months. The expiry
// update, renewal log and RENEW billing event commit atomically; concurrent
// extends of the same customer serialize on the row lock.
func HandleExtendCustomer(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid customer id"})
	}

	req := extendRequest{Months: 1}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
		}
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	result, err := svc.ExtendSubscription(c.Context(), id, req.Months)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrInvalidMonths):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Customer not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to extend subscription"})
		}
	}

	return c.JSON(fiber.Map{
		"ok":              true,
		"months":          result.Months,
		"new_expiry_date": result.NewExpiry.Format("2006-01-02"),
	})
}

// HandleGetRenewalHistory lists a customer's renewal log entries.
func HandleGetRenewalHistory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid customer id"})
	}

	logs, err := repository.GetGlobalFactory().GetRenewalLogRepository().GetByCustomerID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load renewal history"})
	}
	return c.JSON(logs)
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
