package conformance_test

import (
	"fmt"
	"net/http"
	"testing"
)

func TestPartAssemblyLifecycle(t *testing.T) {
	token, login := newSession(t)
	wks := newWorkspace(t, token)
	base := "/api/workspaces/" + wks + "/parts"

	for _, number := range []string{"SEAT-010", "CAR-001"} {
		resp := doRequest(t, http.MethodPost, base, token, map[string]any{
			"number": number,
			"name":   number,
		})
		mustStatus(t, resp, http.StatusCreated)
		rev := readJSON(t, resp)
		assertStringField(t, rev, "version", "A")
		assertStringField(t, rev, "checkOutUser", login)
	}

	// Wire the child into the assembly's working iteration.
	resp := doRequest(t, http.MethodPut, base+"/CAR-001/A/1", token, map[string]any{
		"components": []map[string]any{
			{
				"component": map[string]any{"number": "SEAT-010"},
				"amount":    2,
				"cadInstances": []map[string]any{
					{"tx": -0.5}, {"tx": 0.5},
				},
			},
		},
	})
	mustStatus(t, resp, http.StatusOK)
	it := readJSON(t, resp)
	components := assertIsArray(t, it, "components")
	if len(components) != 1 {
		t.Fatalf("expected 1 usage link, got %d", len(components))
	}

	for _, number := range []string{"SEAT-010", "CAR-001"} {
		resp = doRequest(t, http.MethodPut, base+"/"+number+"/A/checkin", token, nil)
		mustStatus(t, resp, http.StatusNoContent)
		_ = resp.Body.Close()
	}

	// The released revision keeps the structure.
	resp = doRequest(t, http.MethodGet, base+"/CAR-001/A", token, nil)
	mustStatus(t, resp, http.StatusOK)
	rev := readJSON(t, resp)
	iterations := assertIsArray(t, rev, "partIterations")
	if len(iterations) != 1 {
		t.Fatalf("expected 1 iteration, got %d", len(iterations))
	}
	link := toObject(t, assertIsArray(t, toObject(t, iterations[0]), "components")[0])
	instances := assertIsArray(t, link, "cadInstances")
	if len(instances) != 2 {
		t.Errorf("expected 2 cad instances, got %d", len(instances))
	}
}

func TestPartSearch(t *testing.T) {
	token, _ := newSession(t)
	wks := newWorkspace(t, token)
	base := "/api/workspaces/" + wks + "/parts"

	for _, number := range []string{"SEAT-010", "SEAT-020", "ENGINE-050"} {
		resp := doRequest(t, http.MethodPost, base, token, map[string]any{"number": number})
		mustStatus(t, resp, http.StatusCreated)
		_ = resp.Body.Close()
	}

	resp := doRequest(t, http.MethodGet, base+"/search?number=SEAT&limit=10", token, nil)
	mustStatus(t, resp, http.StatusOK)
	masters := readJSONArray(t, resp)
	if len(masters) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(masters))
	}
	first := toObject(t, masters[0])
	assertStringField(t, first, "number", "SEAT-010")
	lastRevision, ok := first["lastRevision"].(map[string]any)
	if !ok {
		t.Fatalf("expected lastRevision object, got %T", first["lastRevision"])
	}
	assertStringField(t, lastRevision, "version", "A")
}

func TestPartConversionPolling(t *testing.T) {
	token, _ := newSession(t)
	wks := newWorkspace(t, token)
	base := "/api/workspaces/" + wks + "/parts"

	resp := doRequest(t, http.MethodPost, base, token, map[string]any{"number": "ENGINE-100"})
	mustStatus(t, resp, http.StatusCreated)
	_ = resp.Body.Close()

	resp = doUpload(t, base+"/ENGINE-100/A/1/files?type=nativecad", token, "engine.obj", "o engine")
	mustStatus(t, resp, http.StatusCreated)
	_ = resp.Body.Close()

	// The first poll reports a running conversion, the second a finished one.
	for i, want := range []string{"pending", "done"} {
		resp = doRequest(t, http.MethodGet, base+"/ENGINE-100/A/1/conversion", token, nil)
		mustStatus(t, resp, http.StatusOK)
		status := readJSON(t, resp)
		assertStringField(t, status, "status", want)
		if i == 0 {
			assertStringField(t, status, "number", "ENGINE-100")
		}
	}
}

func TestPartConversionNeedsNativeCAD(t *testing.T) {
	token, _ := newSession(t)
	wks := newWorkspace(t, token)
	base := "/api/workspaces/" + wks + "/parts"

	resp := doRequest(t, http.MethodPost, base, token, map[string]any{"number": "DOC-HOLDER"})
	mustStatus(t, resp, http.StatusCreated)
	_ = resp.Body.Close()

	// An attached file does not open a conversion.
	resp = doUpload(t, base+"/DOC-HOLDER/A/1/files", token, "notes.txt", "n/a")
	mustStatus(t, resp, http.StatusCreated)
	_ = resp.Body.Close()

	resp = doRequest(t, http.MethodGet, base+"/DOC-HOLDER/A/1/conversion", token, nil)
	mustStatus(t, resp, http.StatusNotFound)
	assertErrorEnvelope(t, readJSON(t, resp), "NOT_FOUND")
}

func TestPartCheckOutCopiesIteration(t *testing.T) {
	token, _ := newSession(t)
	wks := newWorkspace(t, token)
	base := "/api/workspaces/" + wks + "/parts"

	resp := doRequest(t, http.MethodPost, base, token, map[string]any{"number": "LOCK-010"})
	mustStatus(t, resp, http.StatusCreated)
	_ = resp.Body.Close()

	resp = doRequest(t, http.MethodPut, base+"/LOCK-010/A/1", token, map[string]any{
		"instanceAttributes": []map[string]any{
			{"name": "material", "type": "TEXT", "value": "steel"},
		},
	})
	mustStatus(t, resp, http.StatusOK)
	_ = resp.Body.Close()

	resp = doRequest(t, http.MethodPut, base+"/LOCK-010/A/checkin", token, nil)
	mustStatus(t, resp, http.StatusNoContent)
	_ = resp.Body.Close()

	resp = doRequest(t, http.MethodPut, base+"/LOCK-010/A/checkout", token, nil)
	mustStatus(t, resp, http.StatusNoContent)
	_ = resp.Body.Close()

	resp = doRequest(t, http.MethodGet, base+"/LOCK-010/A", token, nil)
	mustStatus(t, resp, http.StatusOK)
	rev := readJSON(t, resp)
	iterations := assertIsArray(t, rev, "partIterations")
	if len(iterations) != 2 {
		t.Fatalf("expected 2 iterations, got %d", len(iterations))
	}
	last := toObject(t, iterations[1])
	if got := last["iteration"]; got != float64(2) {
		t.Errorf("iteration = %v, want 2", got)
	}
	attrs := assertIsArray(t, last, "instanceAttributes")
	if len(attrs) != 1 {
		t.Fatalf("expected the attribute to be carried over, got %d", len(attrs))
	}
	assertStringField(t, toObject(t, attrs[0]), "value", "steel")
}

func TestPartMissingRevision(t *testing.T) {
	token, _ := newSession(t)
	wks := newWorkspace(t, token)

	resp := doRequest(t, http.MethodGet,
		fmt.Sprintf("/api/workspaces/%s/parts/NO-SUCH-PART/A", wks), token, nil)
	mustStatus(t, resp, http.StatusNotFound)
	assertErrorEnvelope(t, readJSON(t, resp), "NOT_FOUND")
}
