// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/crowdlabel/models"
	"github.com/danielhkuo/crowdlabel/testutil"
)

func TestSubmitAnnotation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAnnotationHandler(conn, cfg)

	annotatorID := testutil.CreateTestAccount(t, conn, "annotator", models.RoleAnnotator)
	token := testutil.CreateTestSession(t, conn, annotatorID)

	taskID := testutil.CreateTestTask(t, conn, "Cat,Dog", 50)
	closedTaskID := testutil.CreateTestTask(t, conn, "Cat,Dog", 50)
	testutil.CloseTestTask(t, conn, closedTaskID, models.ReviewResolved)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "valid submission",
			requestBody: models.SubmitAnnotationRequest{
				TaskID: taskID,
				Label:  "Dog",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate submission",
			requestBody: models.SubmitAnnotationRequest{
				TaskID: taskID,
				Label:  "Cat",
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "duplicate_submission",
		},
		{
			name: "unknown task",
			requestBody: models.SubmitAnnotationRequest{
				TaskID: "nonexistent-task",
				Label:  "Dog",
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "not_found",
		},
		{
			name: "closed task",
			requestBody: models.SubmitAnnotationRequest{
				TaskID: closedTaskID,
				Label:  "Dog",
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "task_closed",
		},
		{
			name: "label not in options",
			requestBody: models.SubmitAnnotationRequest{
				TaskID: closedTaskID,
				Label:  "Bird",
			},
			// Closed wins: the task state is checked before the label
			expectedStatus: http.StatusConflict,
			expectedCode:   "task_closed",
		},
		{
			name: "missing task_id",
			requestBody: models.SubmitAnnotationRequest{
				Label: "Dog",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing label",
			requestBody: models.SubmitAnnotationRequest{
				TaskID: taskID,
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/annotations", tt.requestBody, map[string]string{
				"X-Session-Token": token,
			})
			w := httptest.NewRecorder()

			handler.Submit(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedCode != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Code != tt.expectedCode {
					t.Errorf("Expected code %s, got %s", tt.expectedCode, resp.Code)
				}
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp models.SubmitAnnotationResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.SubmissionID == "" {
					t.Error("Expected non-empty submission_id")
				}
			}
		})
	}
}

func TestSubmitInvalidLabel(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAnnotationHandler(conn, cfg)

	annotatorID := testutil.CreateTestAccount(t, conn, "annotator", models.RoleAnnotator)
	token := testutil.CreateTestSession(t, conn, annotatorID)
	taskID := testutil.CreateTestTask(t, conn, "Cat,Dog", 50)

	req := testutil.MakeRequest("POST", "/annotations", models.SubmitAnnotationRequest{
		TaskID: taskID,
		Label:  "Bird",
	}, map[string]string{"X-Session-Token": token})
	w := httptest.NewRecorder()

	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Code != "invalid_label" {
		t.Errorf("Expected code invalid_label, got %s", resp.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAnnotationHandler(conn, cfg)

	annotatorID := testutil.CreateTestAccount(t, conn, "annotator", models.RoleAnnotator)
	token := testutil.CreateTestSession(t, conn, annotatorID)

	// Two judged submissions (one correct, one incorrect) and one pending
	for _, s := range []struct {
		verdict models.Verdict
		bounty  models.Cents
	}{
		{models.VerdictCorrect, 100},
		{models.VerdictIncorrect, 50},
		{models.VerdictUnknown, 75},
	} {
		taskID := testutil.CreateTestTask(t, conn, "Cat,Dog", s.bounty)
		testutil.AddTestSubmission(t, conn, annotatorID, taskID, "Dog", s.verdict)
	}

	req := testutil.MakeRequest("GET", "/stats", nil, map[string]string{
		"X-Session-Token": token,
	})
	w := httptest.NewRecorder()

	handler.Stats(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.StatsResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.TotalSubmitted != 3 {
		t.Errorf("Expected 3 total, got %d", resp.TotalSubmitted)
	}
	if resp.CorrectCount != 1 {
		t.Errorf("Expected 1 correct, got %d", resp.CorrectCount)
	}
	if resp.Accuracy != 0.5 {
		t.Errorf("Expected accuracy 0.5, got %f", resp.Accuracy)
	}
	if resp.PendingBalance != 100 {
		t.Errorf("Expected pending balance 100 cents, got %d", resp.PendingBalance)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAnnotationHandler(conn, cfg)

	annotatorID := testutil.CreateTestAccount(t, conn, "annotator", models.RoleAnnotator)
	token := testutil.CreateTestSession(t, conn, annotatorID)

	taskID := testutil.CreateTestTask(t, conn, "Cat,Dog", 50)
	testutil.AddTestSubmission(t, conn, annotatorID, taskID, "Dog", models.VerdictCorrect)

	req := testutil.MakeRequest("GET", "/history", nil, map[string]string{
		"X-Session-Token": token,
	})
	w := httptest.NewRecorder()

	handler.History(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp []models.HistoryEntry
	testutil.AssertJSON(t, w, &resp)
	if len(resp) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(resp))
	}
	if resp[0].TaskID != taskID {
		t.Errorf("Expected task %s, got %s", taskID, resp[0].TaskID)
	}
	if resp[0].ContentRef == "" {
		t.Error("Expected content_ref to be populated")
	}
	if resp[0].Verdict != models.VerdictCorrect {
		t.Errorf("Expected verdict correct, got %s", resp[0].Verdict)
	}
	if resp[0].Age == "" {
		t.Error("Expected humanized age to be populated")
	}
}

func TestHistoryEmptyIsArray(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	handler := NewAnnotationHandler(conn, cfg)

	annotatorID := testutil.CreateTestAccount(t, conn, "annotator", models.RoleAnnotator)
	token := testutil.CreateTestSession(t, conn, annotatorID)

	req := testutil.MakeRequest("GET", "/history", nil, map[string]string{
		"X-Session-Token": token,
	})
	w := httptest.NewRecorder()

	handler.History(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp []models.HistoryEntry
	testutil.AssertJSON(t, w, &resp)
	if resp == nil {
		t.Error("Expected empty array, got null")
	}
	if len(resp) != 0 {
		t.Errorf("Expected 0 entries, got %d", len(resp))
	}
}
