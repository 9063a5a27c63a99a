package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"gorm.io/gorm"
)

var placeholderPattern = regexp.MustCompile(`\{\{id:([^}]+)\}\}`)

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) todayIs(day string) error {
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", day, err)
	}
	t.timeMock.SetCurrentTime(date.Add(12 * time.Hour))
	return nil
}

func (t *testContext) iAmRegisteredAs(email string) error {
	return t.register(email, true)
}

func (t *testContext) iAmRegisteredAsWithoutTheWeeklyDigest(email string) error {
	return t.register(email, false)
}

func (t *testContext) register(email string, weeklyDigest bool) error {
	payload := map[string]any{
		"email":         email,
		"name":          "Test User",
		"password":      testPassword,
		"weekly_digest": weeklyDigest,
	}
	if err := t.sendJSON(http.MethodPost, "/api/v1/auth/register", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d: %v", t.response.status, t.response.body)
	}
	return t.captureTokens()
}

func (t *testContext) iAmLoggedInAs(email string) error {
	t.accessToken = ""
	payload := map[string]any{
		"email":    email,
		"password": testPassword,
	}
	if err := t.sendJSON(http.MethodPost, "/api/v1/auth/login", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("login failed with status %d: %v", t.response.status, t.response.body)
	}
	return t.captureTokens()
}

func (t *testContext) captureTokens() error {
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("auth response is not a JSON object: %v", t.response.body)
	}
	access, _ := body["access_token"].(string)
	refresh, _ := body["refresh_token"].(string)
	if access == "" || refresh == "" {
		return fmt.Errorf("auth response has no tokens: %v", body)
	}
	t.accessToken = access
	t.refreshToken = refresh
	return nil
}

func (t *testContext) iAmNotAuthenticated() error {
	t.accessToken = ""
	delete(t.headers, "Authorization")
	return nil
}

func (t *testContext) myMonthlyIncomeAndSavingsGoal(income, savings string) error {
	payload := fmt.Sprintf(`{"monthly_income": %s, "savings_goal": %s}`, income, savings)
	return t.expectSetup(http.MethodPut, "/api/v1/budget/settings", []byte(payload), http.StatusOK)
}

func (t *testContext) iHaveABill(billType, name, amount string, dueDate int) error {
	payload := fmt.Sprintf(`{"name": %q, "amount": %s, "due_date": %d, "type": %q}`, name, amount, dueDate, billType)
	if err := t.expectSetup(http.MethodPost, "/api/v1/bills", []byte(payload), http.StatusCreated); err != nil {
		return err
	}
	return t.iRememberTheResponseIDAs(name)
}

func (t *testContext) iHaveACreditCard(name, limit, available string) error {
	payload := fmt.Sprintf(`{"name": %q, "limit": %s, "available": %s}`, name, limit, available)
	if err := t.expectSetup(http.MethodPost, "/api/v1/credit-cards", []byte(payload), http.StatusCreated); err != nil {
		return err
	}
	return t.iRememberTheResponseIDAs(name)
}

func (t *testContext) expectSetup(method, path string, payload []byte, status int) error {
	if err := t.executeRequest(method, path, payload); err != nil {
		return err
	}
	if t.response.status != status {
		return fmt.Errorf("%s %s returned %d: %v", method, path, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theEmailProviderRejectsMessages() error {
	t.resend.SetResponse(http.MethodPost, resendEmailsAt, http.StatusUnprocessableEntity, map[string]any{
		"statusCode": http.StatusUnprocessableEntity,
		"name":       "validation_error",
		"message":    "The to address is invalid",
	})
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iRememberTheResponseIDAs(name string) error {
	if t.lastID == "" {
		return fmt.Errorf("the last response carried no id: %v", t.response)
	}
	t.ids[name] = t.lastID
	return nil
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{last_id}}", t.lastID)
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		return t.ids[name]
	})
}

func (t *testContext) sendJSON(method, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return t.executeRequest(method, path, body)
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	if t.server == nil {
		return errors.New("the API server is not running")
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, t.server.URL+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
	}
	t.lastID = ""

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	if id, ok := responseBody["id"].(string); ok {
		t.lastID = id
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value, found := getFieldValue(body, field)
	if !found || value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	expectedValue = t.replacePlaceholders(expectedValue)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if value, found := getFieldValue(body, field); !found || value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeNull(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	value, found := getFieldValue(body, field)
	if !found {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	if value != nil {
		return fmt.Errorf("field '%s' expected null, got %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	value, _ := getFieldValue(body, field)
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}
	if len(items) != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(items))
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	actual := t.response.headers.Get(header)
	if !strings.Contains(actual, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theSnapshotCacheShouldHoldEntries(quantity int) error {
	keys, err := t.redis.Keys("budget:snapshot:*")
	if err != nil {
		return err
	}
	if len(keys) != quantity {
		return fmt.Errorf("expected %d cached snapshots, got %d (%v)", quantity, len(keys), keys)
	}
	return nil
}

func (t *testContext) emailsShouldHaveBeenSentTo(quantity int, recipient string) error {
	sent := 0
	for _, request := range t.resend.GetRequests(http.MethodPost, resendEmailsAt) {
		to, _ := request["to"].([]any)
		for _, address := range to {
			if address == recipient {
				sent++
			}
		}
	}
	if sent != quantity {
		return fmt.Errorf("expected %d emails to %s, got %d", quantity, recipient, sent)
	}
	return nil
}

// getFieldValue walks a dot separated path. Numeric segments index lists.
func getFieldValue(object map[string]any, dotSeparatedField string) (any, bool) {
	var field any = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i < 0 || i >= len(arr) {
				return nil, false
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil, false
		}
		value, exists := m[currentField]
		if !exists {
			return nil, false
		}
		field = value
	}
	return field, true
}
