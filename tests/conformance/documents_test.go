package conformance_test

import (
	"net/http"
	"testing"
)

func TestDocumentLifecycle(t *testing.T) {
	token, login := newSession(t)
	wks := newWorkspace(t, token)
	base := "/api/workspaces/" + wks + "/documents"

	// A new document starts at version A, checked out by its creator.
	resp := doRequest(t, http.MethodPost, base, token, map[string]any{
		"reference": "DOC-001",
		"title":     "First document",
	})
	mustStatus(t, resp, http.StatusCreated)
	doc := readJSON(t, resp)
	assertStringField(t, doc, "documentMasterId", "DOC-001")
	assertStringField(t, doc, "version", "A")
	assertStringField(t, doc, "checkOutUser", login)

	iterations := assertIsArray(t, doc, "documentIterations")
	if len(iterations) != 1 {
		t.Fatalf("expected 1 iteration, got %d", len(iterations))
	}

	// Fill the working iteration.
	resp = doRequest(t, http.MethodPut, base+"/DOC-001/A/1", token, map[string]any{
		"revisionNote": "initial",
		"instanceAttributes": []map[string]any{
			{"name": "sent", "type": "BOOLEAN", "value": "true"},
		},
	})
	mustStatus(t, resp, http.StatusOK)
	it := readJSON(t, resp)
	attrs := assertIsArray(t, it, "instanceAttributes")
	if len(attrs) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(attrs))
	}
	assertStringField(t, toObject(t, attrs[0]), "value", "true")

	// Attach a file, then release the revision.
	resp = doUpload(t, base+"/DOC-001/A/1/files", token, "readme.txt", "hello")
	mustStatus(t, resp, http.StatusCreated)
	_ = resp.Body.Close()

	resp = doRequest(t, http.MethodPut, base+"/DOC-001/A/checkin", token, nil)
	mustStatus(t, resp, http.StatusNoContent)
	_ = resp.Body.Close()

	// A checked-in iteration is immutable.
	resp = doRequest(t, http.MethodPut, base+"/DOC-001/A/1", token, map[string]any{
		"revisionNote": "too late",
	})
	mustStatus(t, resp, http.StatusBadRequest)
	assertErrorEnvelope(t, readJSON(t, resp), "VALIDATION_ERROR")

	// Checking out again succeeds once, then conflicts.
	resp = doRequest(t, http.MethodPut, base+"/DOC-001/A/checkout", token, nil)
	mustStatus(t, resp, http.StatusNoContent)
	_ = resp.Body.Close()

	resp = doRequest(t, http.MethodPut, base+"/DOC-001/A/checkout", token, nil)
	mustStatus(t, resp, http.StatusConflict)
	assertErrorEnvelope(t, readJSON(t, resp), "CONFLICT")
}

func TestDocumentDuplicateReferenceConflict(t *testing.T) {
	token, _ := newSession(t)
	wks := newWorkspace(t, token)
	base := "/api/workspaces/" + wks + "/documents"

	resp := doRequest(t, http.MethodPost, base, token, map[string]any{"reference": "DOC-001"})
	mustStatus(t, resp, http.StatusCreated)
	_ = resp.Body.Close()

	resp = doRequest(t, http.MethodPost, base, token, map[string]any{"reference": "DOC-001"})
	mustStatus(t, resp, http.StatusConflict)
	assertErrorEnvelope(t, readJSON(t, resp), "CONFLICT")
}

func TestDocumentMissingFolder(t *testing.T) {
	token, _ := newSession(t)
	wks := newWorkspace(t, token)

	resp := doRequest(t, http.MethodPost,
		"/api/workspaces/"+wks+"/documents?folder=NoSuchFolder", token,
		map[string]any{"reference": "DOC-002"})
	mustStatus(t, resp, http.StatusNotFound)
	assertErrorEnvelope(t, readJSON(t, resp), "NOT_FOUND")
}

func TestDocumentTemplateRoundTrip(t *testing.T) {
	token, _ := newSession(t)
	wks := newWorkspace(t, token)
	base := "/api/workspaces/" + wks + "/document-templates"

	resp := doRequest(t, http.MethodPost, base, token, map[string]any{
		"reference":    "Letter",
		"documentType": "Paper",
		"mask":         "LETTER-###",
		"idGeneration": true,
		"attributeTemplates": []map[string]any{
			{"name": "recipient", "type": "TEXT", "mandatory": true},
		},
	})
	mustStatus(t, resp, http.StatusCreated)
	tpl := readJSON(t, resp)
	assertStringField(t, tpl, "reference", "Letter")
	assertStringField(t, tpl, "workspaceId", wks)

	resp = doRequest(t, http.MethodPost, base, token, map[string]any{"reference": "Letter"})
	mustStatus(t, resp, http.StatusConflict)
	assertErrorEnvelope(t, readJSON(t, resp), "CONFLICT")
}
