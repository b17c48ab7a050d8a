package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
	"github.com/erp/ledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountService is the chart-of-accounts application service used by AccountHandler
type AccountService interface {
	Create(ctx context.Context, req ledgerapp.CreateAccountRequest) (*ledgerapp.AccountResponse, error)
	GetTree(ctx context.Context, query ledgerapp.TreeQuery) (*ledgerapp.TreeResponse, error)
	Update(ctx context.Context, id uuid.UUID, req ledgerapp.UpdateAccountRequest) (*ledgerapp.UpdateAccountResult, error)
	Delete(ctx context.Context, id uuid.UUID) (*ledgerapp.AccountResponse, error)
	GetByParentName(ctx context.Context, name string) (*ledgerapp.AccountNode, error)
	GetAccountBalance(ctx context.Context, id uuid.UUID) (*ledgerapp.AccountBalanceResponse, error)
}

// AccountHandler handles chart-of-accounts API endpoints
type AccountHandler struct {
	BaseHandler
	accountService AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// CreateAccountRequest is the body of POST /ledger/accounts.
// Nature and account type fall back to the root's policy when omitted.
// @Description Request body for creating an account under an existing parent
type CreateAccountRequest struct {
	ParentID           string  `json:"parent_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name               string  `json:"name" binding:"required,max=255" example:"Cash"`
	Nature             string  `json:"nature" binding:"omitempty,account_nature" example:"debit" enums:"debit,credit"`
	AccountType        *string `json:"account_type" binding:"omitempty,account_type" example:"balance_sheet" enums:"balance_sheet,p&l"`
	CostCenterRequired *bool   `json:"cc_required" example:"false"`
}

// Update field keys
const (
	fieldName               = "name"
	fieldCostCenterRequired = "cc_required"
	fieldAccountType        = "account_type"
)

// Create godoc
// @Summary      Create an account
// @Description  Create an account under an existing parent. The code is derived from the parent's code. Nature and account type default to the root's policy.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request body CreateAccountRequest true "Account creation request"
// @Success      201 {object} dto.Response{data=ledgerapp.AccountResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	appReq := ledgerapp.CreateAccountRequest{
		Name:        req.Name,
		Nature:      req.Nature,
		AccountType: req.AccountType,
		CreatedBy:   getUserID(c),
	}
	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			h.ValidationFailed(c, "Invalid parent ID format")
			return
		}
		appReq.ParentID = &parentID
	}
	if req.CostCenterRequired != nil {
		appReq.CostCenterRequired = *req.CostCenterRequired
	}

	account, err := h.accountService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, account)
}

// GetTree godoc
// @Summary      Get the account tree
// @Description  Retrieve a page of root accounts, each with its full subtree and debit/credit rollups. Grand totals cover every root.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Roots per page" default(20)
// @Success      200 {object} dto.Response{data=ledgerapp.TreeResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/accounts/tree [get]
func (h *AccountHandler) GetTree(c *gin.Context) {
	var page dto.TreePageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		h.BindError(c, err)
		return
	}

	tree, err := h.accountService.GetTree(c.Request.Context(), ledgerapp.TreeQuery{
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, tree, tree.Total, tree.Page, tree.PageSize)
}

// Update godoc
// @Summary      Update an account
// @Description  Apply the keys present in the body: name, cc_required and account_type. An explicit null account_type clears it. Unknown keys are ignored.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Param        request body object true "Fields to update"
// @Success      200 {object} dto.Response{data=ledgerapp.UpdateAccountResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/accounts/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		h.ValidationFailed(c, "No update data provided")
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Request body must be a JSON object")
		return
	}
	if len(fields) == 0 {
		h.ValidationFailed(c, "No update data provided")
		return
	}

	req, msg := parseUpdateFields(fields)
	if msg != "" {
		h.ValidationFailed(c, msg)
		return
	}
	if !req.HasFields() {
		h.ValidationFailed(c, "No valid update fields provided")
		return
	}
	req.UpdatedBy = getUserID(c)

	result, err := h.accountService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// parseUpdateFields maps the known keys of an update body; unknown keys are ignored
func parseUpdateFields(fields map[string]json.RawMessage) (ledgerapp.UpdateAccountRequest, string) {
	var req ledgerapp.UpdateAccountRequest

	if v, ok := fields[fieldName]; ok {
		var name string
		if isNull(v) || json.Unmarshal(v, &name) != nil {
			return req, "Name must be a string"
		}
		req.Name = &name
	}

	if v, ok := fields[fieldCostCenterRequired]; ok {
		var required bool
		if isNull(v) || json.Unmarshal(v, &required) != nil {
			return req, "Cost center requirement must be a boolean value"
		}
		req.CostCenterRequired = &required
	}

	if v, ok := fields[fieldAccountType]; ok {
		req.AccountTypeSet = true
		if !isNull(v) {
			var accountType string
			if json.Unmarshal(v, &accountType) != nil {
				return req, "Account type must be either \"balance_sheet\" or \"p&l\""
			}
			req.AccountType = &accountType
		}
	}

	return req, ""
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// Delete godoc
// @Summary      Delete an account
// @Description  Delete a leaf account that no journal entry or transaction references. Every blocking reason is reported.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} dto.Response{data=ledgerapp.AccountResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	account, err := h.accountService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}

// GetByParentName godoc
// @Summary      Get a subtree by account name
// @Description  Retrieve the account with exactly this name and all of its descendants
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        name path string true "Account name"
// @Success      200 {object} dto.Response{data=ledgerapp.AccountNode}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/accounts/by-parent/{name} [get]
func (h *AccountHandler) GetByParentName(c *gin.Context) {
	node, err := h.accountService.GetByParentName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, node)
}

// GetBalance godoc
// @Summary      Get an account balance
// @Description  Retrieve an account with its own and subtree totals and the balance signed by its nature
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} dto.Response{data=ledgerapp.AccountBalanceResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /ledger/accounts/{id}/balance [get]
func (h *AccountHandler) GetBalance(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	balance, err := h.accountService.GetAccountBalance(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, balance)
}

func (h *AccountHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.ValidationFailed(c, "Invalid account ID format")
		return uuid.Nil, false
	}
	return id, true
}
