// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/crowdlabel/models"
	"github.com/danielhkuo/crowdlabel/testutil"
)

func TestReviewQueueEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(conn, cfg)

	adminID := testutil.CreateTestAccount(t, conn, "admin", models.RoleAdmin)
	adminToken := testutil.CreateTestSession(t, conn, adminID)

	disputedID := testutil.CreateTestTask(t, conn, "Cat,Dog", 50)
	testutil.CloseTestTask(t, conn, disputedID, models.ReviewDisputed)

	resolvedID := testutil.CreateTestTask(t, conn, "Cat,Dog", 50)
	testutil.CloseTestTask(t, conn, resolvedID, models.ReviewResolved)

	testutil.CreateTestTask(t, conn, "Cat,Dog", 50) // still open

	req := testutil.MakeRequest("GET", "/admin/reviews", nil, map[string]string{
		"X-Session-Token": adminToken,
	})
	w := httptest.NewRecorder()

	handler.ReviewQueue(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp []models.Task
	testutil.AssertJSON(t, w, &resp)
	if len(resp) != 1 {
		t.Fatalf("Expected 1 disputed task, got %d", len(resp))
	}
	if resp[0].ID != disputedID {
		t.Errorf("Expected task %s, got %s", disputedID, resp[0].ID)
	}
}

func TestResolveEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(conn, cfg)

	adminID := testutil.CreateTestAccount(t, conn, "admin", models.RoleAdmin)
	adminToken := testutil.CreateTestSession(t, conn, adminID)

	taskID := testutil.CreateTestTask(t, conn, "Cat,Dog", 50)
	for i, label := range []string{"Dog", "Dog", "Dog", "Cat", "Cat"} {
		annotator := testutil.CreateTestAccount(t, conn, fmt.Sprintf("worker%d", i), models.RoleAnnotator)
		testutil.AddTestSubmission(t, conn, annotator, taskID, label, models.VerdictUnknown)
	}
	testutil.CloseTestTask(t, conn, taskID, models.ReviewDisputed)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name: "missing task_id",
			requestBody: models.ResolveRequest{
				TrueLabel: "Dog",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing true_label",
			requestBody: models.ResolveRequest{
				TaskID: taskID,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown task",
			requestBody: models.ResolveRequest{
				TaskID:    "nonexistent",
				TrueLabel: "Dog",
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "label outside options",
			requestBody: models.ResolveRequest{
				TaskID:    taskID,
				TrueLabel: "Bird",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "valid resolution",
			requestBody: models.ResolveRequest{
				TaskID:    taskID,
				TrueLabel: "Dog",
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/admin/resolve", tt.requestBody, map[string]string{
				"X-Session-Token": adminToken,
			})
			w := httptest.NewRecorder()

			handler.Resolve(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	// The valid resolution rewrote verdicts by label
	var correct, incorrect int
	err := conn.QueryRow(`
		SELECT COUNT(*) FILTER (WHERE verdict = 'correct'),
		       COUNT(*) FILTER (WHERE verdict = 'incorrect')
		FROM submission WHERE task_id = $1
	`, taskID).Scan(&correct, &incorrect)
	if err != nil {
		t.Fatalf("Failed to count verdicts: %v", err)
	}
	if correct != 3 || incorrect != 2 {
		t.Errorf("Expected 3 correct / 2 incorrect, got %d / %d", correct, incorrect)
	}

	var reviewStatus string
	var resolvedLabel *string
	err = conn.QueryRow(`
		SELECT review_status, resolved_label FROM task WHERE id = $1
	`, taskID).Scan(&reviewStatus, &resolvedLabel)
	if err != nil {
		t.Fatalf("Failed to read task: %v", err)
	}
	if reviewStatus != models.ReviewResolved {
		t.Errorf("Expected resolved review status, got %s", reviewStatus)
	}
	if resolvedLabel == nil || *resolvedLabel != "Dog" {
		t.Errorf("Expected resolved label Dog, got %v", resolvedLabel)
	}
}

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(conn, cfg)

	annotatorID := testutil.CreateTestAccount(t, conn, "annotator", models.RoleAnnotator)
	annotatorToken := testutil.CreateTestSession(t, conn, annotatorID)

	endpoints := []struct {
		name string
		call func(w http.ResponseWriter, r *http.Request)
		req  *http.Request
	}{
		{
			name: "review queue",
			call: handler.ReviewQueue,
			req: testutil.MakeRequest("GET", "/admin/reviews", nil,
				map[string]string{"X-Session-Token": annotatorToken}),
		},
		{
			name: "resolve",
			call: handler.Resolve,
			req: testutil.MakeRequest("POST", "/admin/resolve",
				models.ResolveRequest{TaskID: "x", TrueLabel: "Dog"},
				map[string]string{"X-Session-Token": annotatorToken}),
		},
		{
			name: "unpaid",
			call: handler.Unpaid,
			req: testutil.MakeRequest("GET", "/admin/unpaid", nil,
				map[string]string{"X-Session-Token": annotatorToken}),
		},
		{
			name: "payroll",
			call: handler.RunPayroll,
			req: testutil.MakeRequest("POST", "/admin/payroll", nil,
				map[string]string{"X-Session-Token": annotatorToken}),
		},
	}

	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ep.call(w, ep.req)
			testutil.AssertStatus(t, w, http.StatusForbidden)
		})
	}
}

func TestUnpaidEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(conn, cfg)

	adminID := testutil.CreateTestAccount(t, conn, "admin", models.RoleAdmin)
	adminToken := testutil.CreateTestSession(t, conn, adminID)

	annotator := testutil.CreateTestAccount(t, conn, "alice", models.RoleAnnotator)
	taskID := testutil.CreateTestTask(t, conn, "Cat,Dog", 125)
	testutil.AddTestSubmission(t, conn, annotator, taskID, "Dog", models.VerdictCorrect)

	req := testutil.MakeRequest("GET", "/admin/unpaid", nil, map[string]string{
		"X-Session-Token": adminToken,
	})
	w := httptest.NewRecorder()

	handler.Unpaid(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp []models.UnpaidEntry
	testutil.AssertJSON(t, w, &resp)
	if len(resp) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(resp))
	}
	if resp[0].Username != "alice" {
		t.Errorf("Expected alice, got %s", resp[0].Username)
	}
	if resp[0].Amount != 125 {
		t.Errorf("Expected 125 cents owed, got %d", resp[0].Amount)
	}
}

func TestRunPayrollEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(conn, cfg)

	adminID := testutil.CreateTestAccount(t, conn, "admin", models.RoleAdmin)
	adminToken := testutil.CreateTestSession(t, conn, adminID)

	annotator := testutil.CreateTestAccount(t, conn, "alice", models.RoleAnnotator)
	for _, bounty := range []models.Cents{50, 75} {
		taskID := testutil.CreateTestTask(t, conn, "Cat,Dog", bounty)
		testutil.AddTestSubmission(t, conn, annotator, taskID, "Dog", models.VerdictCorrect)
	}

	req := testutil.MakeRequest("POST", "/admin/payroll", nil, map[string]string{
		"X-Session-Token": adminToken,
	})
	w := httptest.NewRecorder()

	handler.RunPayroll(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PayrollResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Total != 125 {
		t.Errorf("Expected total 125 cents, got %d", resp.Total)
	}
	if len(resp.Payouts) != 1 {
		t.Fatalf("Expected 1 payout, got %d", len(resp.Payouts))
	}
	if resp.Payouts[0].Amount != 125 {
		t.Errorf("Expected payout 125 cents, got %d", resp.Payouts[0].Amount)
	}

	// A second run settles nothing
	req = testutil.MakeRequest("POST", "/admin/payroll", nil, map[string]string{
		"X-Session-Token": adminToken,
	})
	w = httptest.NewRecorder()

	handler.RunPayroll(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var second models.PayrollResponse
	testutil.AssertJSON(t, w, &second)
	if second.Total != 0 {
		t.Errorf("Expected nothing left to settle, got %d cents", second.Total)
	}
}
