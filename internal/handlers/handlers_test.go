package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"rockie-classroom-api/internal/auth"
	"rockie-classroom-api/internal/models"
	"rockie-classroom-api/internal/pipeline"
	"rockie-classroom-api/internal/repositories/memory"
	"rockie-classroom-api/internal/services"
	"rockie-classroom-api/pkg/lambda"
)

// fixture wires the handlers against in-memory stores, the same shape the
// local development server runs.
type fixture struct {
	activities   *memory.RecordStore
	purchasables *memory.RecordStore
	rewards      *memory.RecordStore
	rockies      *memory.RecordStore
	tokens       *memory.TokenStore
	students     *memory.StudentStore
	transactions *memory.TransactionStore

	activityHandler    *ActivityHandler
	purchasableHandler *PurchasableHandler
	rewardHandler      *RewardHandler
	rockieHandler      *RockieHandler
	authHandler        *AuthHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		activities:   memory.NewRecordStore("dev_t_activities"),
		purchasables: memory.NewRecordStore("dev_t_purchasables"),
		rewards:      memory.NewRecordStore("dev_t_rewards"),
		rockies:      memory.NewRecordStore("dev_t_rockies"),
		tokens:       memory.NewTokenStore("dev_t_access_tokens"),
		students:     memory.NewStudentStore("dev_t_students"),
		transactions: memory.NewTransactionStore("dev_t_transactions"),
	}

	validator := auth.NewStoreValidator(f.tokens)
	resolver := auth.NewTokenResolver(f.tokens)
	pipe := pipeline.New(validator, resolver, nil)

	purchases := services.NewPurchaseService(f.purchasables, f.rockies, f.transactions, nil)
	authSvc := services.NewAuthService(f.students, f.tokens, time.Hour, nil)

	f.activityHandler = NewActivityHandler(pipe, f.activities)
	f.purchasableHandler = NewPurchasableHandler(pipe, f.purchasables, purchases)
	f.rewardHandler = NewRewardHandler(pipe, f.rewards)
	f.rockieHandler = NewRockieHandler(pipe, f.rockies)
	f.authHandler = NewAuthHandler(authSvc)

	return f
}

// issueToken stores a valid token for the given identity and returns it.
func (f *fixture) issueToken(t *testing.T, tenantID, studentID string) string {
	t.Helper()
	token := models.NewAccessToken(tenantID, studentID, time.Hour)
	if err := f.tokens.Put(context.Background(), token); err != nil {
		t.Fatal(err)
	}
	return token.Token
}

func request(token, body string, pathParams map[string]string) *lambda.Request {
	req := &lambda.Request{
		Headers:    map[string]string{},
		PathParams: pathParams,
		Body:       []byte(body),
	}
	if token != "" {
		req.Headers["Authorization"] = token
	}
	return req
}

func decodeBody(t *testing.T, resp *lambda.Response) map[string]interface{} {
	t.Helper()
	out := map[string]interface{}{}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		t.Fatalf("Response body not a JSON object: %v (%s)", err, resp.Body)
	}
	return out
}

func TestActivityHandler_Lifecycle(t *testing.T) {
	f := newFixture(t)
	token := f.issueToken(t, "t1", "s1")
	ctx := context.Background()

	// Create
	resp, err := f.activityHandler.HandleCreate(ctx, request(token, `{"activity_type": "exercise", "time": 30}`, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d (%s)", resp.StatusCode, resp.Body)
	}
	created := decodeBody(t, resp)
	entityID, _ := created["entity_id"].(string)
	if entityID == "" {
		t.Fatal("Expected a generated entity_id")
	}

	// Get
	resp, _ = f.activityHandler.HandleGet(ctx, request(token, "", map[string]string{"id": entityID}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", resp.StatusCode, resp.Body)
	}

	// Update
	resp, _ = f.activityHandler.HandleUpdate(ctx, request(token, `{"time": 45}`, map[string]string{"id": entityID}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", resp.StatusCode, resp.Body)
	}
	updated := decodeBody(t, resp)
	payload := updated["payload"].(map[string]interface{})
	if payload["time"] != float64(45) {
		t.Errorf("Expected updated time 45, got %v", payload["time"])
	}

	// List
	resp, _ = f.activityHandler.HandleList(ctx, request(token, "", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	// Delete, then the record is gone.
	resp, _ = f.activityHandler.HandleDelete(ctx, request(token, "", map[string]string{"id": entityID}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", resp.StatusCode, resp.Body)
	}
	resp, _ = f.activityHandler.HandleDelete(ctx, request(token, "", map[string]string{"id": entityID}))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Second delete must be 404, got %d", resp.StatusCode)
	}
}

func TestActivityHandler_AuthFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// No Authorization header.
	resp, _ := f.activityHandler.HandleCreate(ctx, request("", `{"activity_type": "exercise"}`, nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 without a token, got %d", resp.StatusCode)
	}

	// Unknown token.
	resp, _ = f.activityHandler.HandleCreate(ctx, request("tok-unknown", `{"activity_type": "exercise"}`, nil))
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403 for an unknown token, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "token does not exist" {
		t.Errorf("Unexpected rejection reason: %v", body["error"])
	}
}

func TestActivityHandler_DuplicateCreate(t *testing.T) {
	f := newFixture(t)
	token := f.issueToken(t, "t1", "s1")
	ctx := context.Background()

	body := `{"activity_id": "act-1", "activity_type": "exercise", "time": 30}`
	resp, _ := f.activityHandler.HandleCreate(ctx, request(token, body, nil))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	resp, _ = f.activityHandler.HandleCreate(ctx, request(token, body, nil))
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409 for a duplicate ID, got %d (%s)", resp.StatusCode, resp.Body)
	}
}

func TestActivityHandler_OwnershipEnforced(t *testing.T) {
	f := newFixture(t)
	owner := f.issueToken(t, "t1", "s1")
	other := f.issueToken(t, "t1", "s2")
	ctx := context.Background()

	resp, _ := f.activityHandler.HandleCreate(ctx, request(owner, `{"activity_id": "act-1", "activity_type": "exercise"}`, nil))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	// Another student of the same tenant may read but not mutate.
	resp, _ = f.activityHandler.HandleGet(ctx, request(other, "", map[string]string{"id": "act-1"}))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Reads are tenant-wide, expected 200, got %d", resp.StatusCode)
	}

	resp, _ = f.activityHandler.HandleUpdate(ctx, request(other, `{"time": 99}`, map[string]string{"id": "act-1"}))
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403 for a non-owner update, got %d", resp.StatusCode)
	}

	resp, _ = f.activityHandler.HandleDelete(ctx, request(other, "", map[string]string{"id": "act-1"}))
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403 for a non-owner delete, got %d", resp.StatusCode)
	}

	// The record is unchanged.
	record, err := f.activities.Get(ctx, "t1", "act-1")
	if err != nil {
		t.Fatalf("Record must survive refused writes: %v", err)
	}
	if record.Payload["time"] == float64(99) {
		t.Error("Refused update must not change the record")
	}
}

func TestActivityHandler_TenantIsolation(t *testing.T) {
	f := newFixture(t)
	tenant1 := f.issueToken(t, "t1", "s1")
	tenant2 := f.issueToken(t, "t2", "s9")
	ctx := context.Background()

	resp, _ := f.activityHandler.HandleCreate(ctx, request(tenant1, `{"activity_id": "act-1", "activity_type": "exercise"}`, nil))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	resp, _ = f.activityHandler.HandleGet(ctx, request(tenant2, "", map[string]string{"id": "act-1"}))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Records must not leak across tenants, got %d", resp.StatusCode)
	}
}

func TestActivityHandler_MissingPathID(t *testing.T) {
	f := newFixture(t)
	token := f.issueToken(t, "t1", "s1")

	resp, _ := f.activityHandler.HandleGet(context.Background(), request(token, "", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 without a path ID, got %d", resp.StatusCode)
	}
}

func TestRockieHandler_Lifecycle(t *testing.T) {
	f := newFixture(t)
	token := f.issueToken(t, "t1", "s1")
	ctx := context.Background()

	resp, _ := f.rockieHandler.HandleCreate(ctx, request(token, `{}`, nil))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d (%s)", resp.StatusCode, resp.Body)
	}
	created := decodeBody(t, resp)
	if created["entity_id"] != "s1" {
		t.Errorf("Rockie must be keyed by its owner, got %v", created["entity_id"])
	}
	payload := created["payload"].(map[string]interface{})
	if payload["rockie_name"] != models.DefaultRockieName {
		t.Errorf("Expected default name, got %v", payload["rockie_name"])
	}

	// One rockie per student.
	resp, _ = f.rockieHandler.HandleCreate(ctx, request(token, `{}`, nil))
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Second create must be 409, got %d", resp.StatusCode)
	}

	resp, _ = f.rockieHandler.HandleUpdate(ctx, request(token, `{"rockie_name": "Sparky", "coins": 50}`, nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", resp.StatusCode, resp.Body)
	}

	resp, _ = f.rockieHandler.HandleGet(ctx, request(token, "", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	got := decodeBody(t, resp)
	payload = got["payload"].(map[string]interface{})
	if payload["rockie_name"] != "Sparky" {
		t.Errorf("Update not visible on read: %v", payload["rockie_name"])
	}

	resp, _ = f.rockieHandler.HandleDelete(ctx, request(token, "", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	resp, _ = f.rockieHandler.HandleGet(ctx, request(token, "", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Deleted rockie must be gone, got %d", resp.StatusCode)
	}
}

func TestRewardHandler_Validation(t *testing.T) {
	f := newFixture(t)
	token := f.issueToken(t, "t1", "s1")

	resp, _ := f.rewardHandler.HandleCreate(context.Background(), request(token, `{}`, nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for a reward without experience, got %d (%s)", resp.StatusCode, resp.Body)
	}

	resp, _ = f.rewardHandler.HandleCreate(context.Background(), request(token, `{"reward_name": "Gold Star", "experience": 100}`, nil))
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("Expected 201, got %d (%s)", resp.StatusCode, resp.Body)
	}
}

func TestPurchasableHandler_Buy(t *testing.T) {
	f := newFixture(t)
	token := f.issueToken(t, "t1", "s1")
	ctx := context.Background()

	resp, _ := f.purchasableHandler.HandleCreate(ctx, request(token, `{"item_id": "item-1", "name": "Wizard Hat", "price": 25, "stock": 1}`, nil))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d (%s)", resp.StatusCode, resp.Body)
	}

	resp, _ = f.rockieHandler.HandleCreate(ctx, request(token, `{}`, nil))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	resp, _ = f.rockieHandler.HandleUpdate(ctx, request(token, `{"coins": 100}`, nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	resp, _ = f.purchasableHandler.HandleBuy(ctx, request(token, `{"item_id": "item-1"}`, nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", resp.StatusCode, resp.Body)
	}
	body := decodeBody(t, resp)
	if body["message"] != "Purchase successful" {
		t.Errorf("Unexpected purchase response: %v", body)
	}

	// The single unit is gone; the next purchase is refused.
	resp, _ = f.purchasableHandler.HandleBuy(ctx, request(token, `{"item_id": "item-1"}`, nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 when out of stock, got %d (%s)", resp.StatusCode, resp.Body)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	student := &models.Student{
		TenantID:     "t1",
		StudentID:    "s1",
		StudentEmail: "ana@example.edu",
		PasswordHash: models.HashPassword("secret"),
	}
	if err := f.students.Put(ctx, student); err != nil {
		t.Fatal(err)
	}

	resp, _ := f.authHandler.HandleLogin(ctx, request("", `{"tenant_id": "t1", "student_email": "ana@example.edu", "password": "secret"}`, nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", resp.StatusCode, resp.Body)
	}
	body := decodeBody(t, resp)
	issued, _ := body["token"].(string)
	if issued == "" {
		t.Fatal("Expected an issued token")
	}

	// The issued token authenticates pipeline requests.
	listResp, _ := f.activityHandler.HandleList(ctx, request(issued, "", nil))
	if listResp.StatusCode != http.StatusOK {
		t.Errorf("Issued token must authenticate, got %d (%s)", listResp.StatusCode, listResp.Body)
	}

	// Wrong password.
	resp, _ = f.authHandler.HandleLogin(ctx, request("", `{"tenant_id": "t1", "student_email": "ana@example.edu", "password": "wrong"}`, nil))
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403 for wrong password, got %d", resp.StatusCode)
	}

	// Missing fields.
	resp, _ = f.authHandler.HandleLogin(ctx, request("", `{"tenant_id": "t1"}`, nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing fields, got %d", resp.StatusCode)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	expired := &models.AccessToken{
		Token:     "tok-old",
		TenantID:  "t1",
		StudentID: "s1",
		Expires:   time.Now().UTC().Add(-time.Hour).Format(models.TimestampLayout),
	}
	if err := f.tokens.Put(ctx, expired); err != nil {
		t.Fatal(err)
	}

	resp, _ := f.activityHandler.HandleList(ctx, request("tok-old", "", nil))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("Expected 403 for an expired token, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "token expired" {
		t.Errorf("Unexpected rejection reason: %v", body["error"])
	}
}
