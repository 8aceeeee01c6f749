// Package handler exposes the ticketing ledger over HTTP.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quantumtix/quantumticket/internal/domain"
	"github.com/quantumtix/quantumticket/internal/dto"
	"github.com/quantumtix/quantumticket/internal/indexer"
	"github.com/quantumtix/quantumticket/internal/ledger"
	"github.com/quantumtix/quantumticket/internal/logger"
	"github.com/quantumtix/quantumticket/internal/middleware"
	"github.com/quantumtix/quantumticket/internal/response"
	"github.com/quantumtix/quantumticket/internal/telemetry"
	"go.uber.org/zap"
)

// TicketingHandler handles all ledger HTTP requests. The caller identity for
// every mutating operation comes from the JWT wallet claim.
type TicketingHandler struct {
	ledger *ledger.Ledger
	index  *indexer.Indexer // optional, enables enumeration endpoints
	log    *logger.Logger

	purchases *telemetry.Counter
	entries   *telemetry.Counter
	refunds   *telemetry.Counter
}

// NewTicketingHandler creates a TicketingHandler. index may be nil.
func NewTicketingHandler(l *ledger.Ledger, index *indexer.Indexer, log *logger.Logger) *TicketingHandler {
	purchases, _ := telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "tickets_purchased_total",
		Description: "Number of tickets sold",
		Unit:        "{ticket}",
	})
	entries, _ := telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "tickets_used_total",
		Description: "Number of tickets validated for entry",
		Unit:        "{ticket}",
	})
	refunds, _ := telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "tickets_refunded_total",
		Description: "Number of tickets refunded and burned",
		Unit:        "{ticket}",
	})
	return &TicketingHandler{
		ledger:    l,
		index:     index,
		log:       log,
		purchases: purchases,
		entries:   entries,
		refunds:   refunds,
	}
}

// ledgerError writes a ledger error with its mapped HTTP status. Unknown
// errors become 500 without leaking internals.
func (h *TicketingHandler) ledgerError(c *gin.Context, err error) {
	var lerr *ledger.Error
	if errors.As(err, &lerr) {
		c.JSON(response.GetHTTPStatus(lerr.Code), response.Error(lerr.Code, lerr.Reason))
		return
	}
	h.log.ErrorContext(c.Request.Context(), "unexpected ledger error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, response.InternalError(""))
}

func (h *TicketingHandler) caller(c *gin.Context) (domain.Address, bool) {
	wallet, ok := middleware.GetWallet(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized("Wallet address not found in token"))
		return domain.ZeroAddress, false
	}
	return wallet, true
}

func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid "+name))
		return 0, false
	}
	return id, true
}

// CreateEvent handles POST /events.
func (h *TicketingHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	organizer, ok := h.caller(c)
	if !ok {
		return
	}

	id, err := h.ledger.CreateEvent(c.Request.Context(), organizer, ledger.CreateEventParams{
		Name:          req.Name,
		Venue:         req.Venue,
		MetadataURI:   req.MetadataURI,
		EventDate:     req.EventDate,
		EntryOpenTime: req.EntryOpenTime,
		TicketPrice:   req.TicketPrice,
		MaxTickets:    req.MaxTickets,
	})
	if err != nil {
		h.ledgerError(c, err)
		return
	}

	ev, err := h.ledger.GetEventDetails(id)
	if err != nil {
		h.ledgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(dto.ToEventResponse(ev)))
}

// GetEvent handles GET /events/:id.
func (h *TicketingHandler) GetEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ev, err := h.ledger.GetEventDetails(id)
	if err != nil {
		h.ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.ToEventResponse(ev)))
}

// ListEvents handles GET /events with offset pagination over event ids.
func (h *TicketingHandler) ListEvents(c *gin.Context) {
	limit := 20
	offset := 0
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	total := h.ledger.TotalEvents()
	events := make([]*dto.EventResponse, 0, limit)
	for id := uint64(offset); id < total && len(events) < limit; id++ {
		ev, err := h.ledger.GetEventDetails(id)
		if err != nil {
			continue
		}
		events = append(events, dto.ToEventResponse(ev))
	}

	c.JSON(http.StatusOK, response.Paginated(events, offset/limit+1, limit, int64(total)))
}

// DeactivateEvent handles POST /events/:id/deactivate.
func (h *TicketingHandler) DeactivateEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.ledger.DeactivateEvent(c.Request.Context(), caller, id); err != nil {
		h.ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(map[string]string{"message": "Event deactivated"}))
}

// SetScanner handles POST /events/:id/scanners.
func (h *TicketingHandler) SetScanner(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.SetScannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	caller, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.ledger.SetScanner(c.Request.Context(), caller, id, domain.Address(req.Scanner), *req.Allowed); err != nil {
		h.ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(map[string]string{"message": "Scanner updated"}))
}

// EventTickets handles GET /events/:id/tickets, served from the index.
func (h *TicketingHandler) EventTickets(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if h.index == nil {
		c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable("Ticket index is not enabled"))
		return
	}

	tokens, err := h.index.TicketsOfEvent(c.Request.Context(), id)
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "event ticket lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.InternalError(""))
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"event_id": id, "token_ids": tokens}))
}

// Purchase handles POST /tickets/purchase.
func (h *TicketingHandler) Purchase(c *gin.Context) {
	var req dto.PurchaseTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	buyer, ok := h.caller(c)
	if !ok {
		return
	}

	receipt, err := h.ledger.BuyTicket(c.Request.Context(), buyer, *req.EventID, req.MetadataURI, *req.Payment)
	if err != nil {
		h.ledgerError(c, err)
		return
	}

	if h.purchases != nil {
		h.purchases.Inc(c.Request.Context(), telemetry.EventIDAttr(receipt.EventID))
	}
	c.JSON(http.StatusCreated, response.Success(dto.ToPurchaseResponse(receipt)))
}

// GetTicket handles GET /tickets/:id.
func (h *TicketingHandler) GetTicket(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	t, err := h.ledger.GetTicketDetails(id)
	if err != nil {
		h.ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.ToTicketResponse(t)))
}

// UseTicket handles POST /tickets/:id/use.
func (h *TicketingHandler) UseTicket(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.ledger.UseTicket(c.Request.Context(), caller, id); err != nil {
		h.ledgerError(c, err)
		return
	}

	if h.entries != nil {
		h.entries.Inc(c.Request.Context(), telemetry.TokenIDAttr(id))
	}
	c.JSON(http.StatusOK, response.Success(map[string]string{"message": "Ticket validated"}))
}

// Transfer handles POST /tickets/:id/transfer.
func (h *TicketingHandler) Transfer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.TransferTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	caller, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.ledger.TransferTicket(c.Request.Context(), caller, id, domain.Address(req.To)); err != nil {
		h.ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(map[string]string{"message": "Ticket transferred"}))
}

// Approve handles POST /tickets/:id/approve.
func (h *TicketingHandler) Approve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	caller, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.ledger.Approve(c.Request.Context(), caller, id, domain.Address(req.Spender)); err != nil {
		h.ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(map[string]string{"message": "Approval updated"}))
}

// Refund handles POST /tickets/:id/refund.
func (h *TicketingHandler) Refund(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	receipt, err := h.ledger.RefundTicket(c.Request.Context(), caller, id)
	if err != nil {
		h.ledgerError(c, err)
		return
	}

	if h.refunds != nil {
		h.refunds.Inc(c.Request.Context(), telemetry.EventIDAttr(receipt.EventID))
	}
	c.JSON(http.StatusOK, response.Success(dto.ToRefundResponse(receipt)))
}

// WalletTickets handles GET /wallets/:address/tickets.
func (h *TicketingHandler) WalletTickets(c *gin.Context) {
	address := domain.Address(c.Param("address"))
	if address.IsZero() {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid address"))
		return
	}

	resp := &dto.BalanceResponse{
		Wallet: string(address),
		Count:  h.ledger.BalanceOf(address),
	}
	if h.index != nil {
		tokens, err := h.index.TicketsOf(c.Request.Context(), address)
		if err != nil {
			h.log.WarnContext(c.Request.Context(), "wallet ticket lookup failed", zap.Error(err))
		} else {
			resp.TokenIDs = tokens
		}
	}
	c.JSON(http.StatusOK, response.Success(resp))
}

// OrganizerBalance handles GET /organizer/balance.
func (h *TicketingHandler) OrganizerBalance(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{
		"organizer": string(caller),
		"balance":   h.ledger.OrganizerBalance(caller),
	}))
}

// WithdrawOrganizer handles POST /organizer/withdraw.
func (h *TicketingHandler) WithdrawOrganizer(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	amount, err := h.ledger.WithdrawOrganizerFunds(c.Request.Context(), caller)
	if err != nil {
		h.ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(&dto.WithdrawalResponse{Amount: amount}))
}

// WithdrawPlatform handles POST /admin/withdraw.
func (h *TicketingHandler) WithdrawPlatform(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	amount, err := h.ledger.WithdrawPlatformFees(c.Request.Context(), caller)
	if err != nil {
		h.ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(&dto.WithdrawalResponse{Amount: amount}))
}

// Pause handles POST /admin/pause.
func (h *TicketingHandler) Pause(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.ledger.Pause(c.Request.Context(), caller); err != nil {
		h.ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(map[string]string{"message": "Ledger paused"}))
}

// Unpause handles POST /admin/unpause.
func (h *TicketingHandler) Unpause(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.ledger.Unpause(c.Request.Context(), caller); err != nil {
		h.ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(map[string]string{"message": "Ledger unpaused"}))
}

// TransferOwnership handles POST /admin/transfer-ownership.
func (h *TicketingHandler) TransferOwnership(c *gin.Context) {
	var req dto.TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	caller, ok := h.caller(c)
	if !ok {
		return
	}

	if err := h.ledger.TransferOwnership(c.Request.Context(), caller, domain.Address(req.NewOwner)); err != nil {
		h.ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(map[string]string{"message": "Ownership transferred"}))
}

// Status handles GET /status.
func (h *TicketingHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(&dto.StatusResponse{
		Owner:           string(h.ledger.Owner()),
		Paused:          h.ledger.Paused(),
		TotalEvents:     h.ledger.TotalEvents(),
		TotalTickets:    h.ledger.TotalTickets(),
		PlatformBalance: h.ledger.PlatformBalance(),
		TotalHeld:       h.ledger.TotalHeld(),
	}))
}
