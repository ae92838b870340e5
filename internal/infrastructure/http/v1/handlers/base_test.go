package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// The list route methods on the concrete handlers shadow promoted
// BaseHandler methods, so the paginated responder must keep a distinct
// name and stay callable from inside them.
var _ = (&BaseHandler{}).Paginated

func TestPaginated_WritesListEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	h := NewBaseHandler()
	h.Paginated(c, []string{"WH1/IN/0001", "WH1/IN/0002"}, 12, 2, 4)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Items      []string `json:"items"`
		TotalCount int64    `json:"totalCount"`
		Limit      int      `json:"limit"`
		Offset     int      `json:"offset"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Items) != 2 || body.Items[0] != "WH1/IN/0001" {
		t.Errorf("items = %v, want the two references", body.Items)
	}
	if body.TotalCount != 12 || body.Limit != 2 || body.Offset != 4 {
		t.Errorf("pagination = %d/%d/%d, want 12/2/4", body.TotalCount, body.Limit, body.Offset)
	}
}

func TestRouteMethods_AreGinHandlers(t *testing.T) {
	for name, fn := range map[string]gin.HandlerFunc{
		"receipt list":  (&ReceiptHandler{}).List,
		"delivery list": (&DeliveryHandler{}).List,
		"stock list":    (&StockHandler{}).List,
		"history list":  (&HistoryHandler{}).List,
	} {
		if fn == nil {
			t.Errorf("%s handler is nil", name)
		}
	}
}
