package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/xtding233/payout-engine/internal/contract"
	"github.com/xtding233/payout-engine/internal/preset"
)

type engineConfig struct {
	maxLastOutcome int64
	workers        int
	cacheSize      int
}

func (c engineConfig) MaxLastOutcome() int64 { return c.maxLastOutcome }
func (c engineConfig) RangeWorkers() int     { return c.workers }
func (c engineConfig) RangeCacheSize() int   { return c.cacheSize }

const defaultPreset = `
version: "1"
kind: curve
collateral: { offer: 1500, accept: 1500 }
curve:
  pieces:
    - - { outcome: 0, payout: 0 }
      - { outcome: 3000, payout: 3000 }
  rounding_intervals:
    - { begin_outcome: 0, rounding_modulus: 100 }
  last_outcome: 3000
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"default": defaultPreset,
		"parlay": `
kind: parlay
parlay:
  combination_method: multiply
  max_normalized_value: 1000
  parameters:
    - { data_type: price, threshold: 50000, range: 10000, direction: above, transformation: linear, weight: 1 }
`,
		"broken": "collateral: { offer: -1 }\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	h := NewHandler(HandlerDeps{
		Presets: preset.NewLoader(dir),
		Engine:  engineConfig{maxLastOutcome: 50_000, workers: 2, cacheSize: 16},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatal(err)
		}
	}
	resp, err := http.Post(srv.URL+path, "application/json", &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, out
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, out
}

func mustStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status %d, want %d: %s", resp.StatusCode, want, body)
	}
}

func threeSegmentBody(parallel bool) map[string]any {
	return map[string]any{
		"points": [][]contract.PayoutPoint{
			{{Outcome: 0, Payout: 0}, {Outcome: 1000, Payout: 1000}},
			{{Outcome: 1000, Payout: 1000}, {Outcome: 2000, Payout: 2000}},
			{{Outcome: 2000, Payout: 2000}, {Outcome: 3000, Payout: 3000}},
		},
		"roundingIntervals": []contract.RoundingInterval{{BeginOutcome: 0, RoundingModulus: 100}},
		"totalCollateral":   3000,
		"lastOutcome":       3000,
		"parallel":          parallel,
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/health")
	mustStatus(t, resp, body, http.StatusOK)
}

func TestEvaluateCurve(t *testing.T) {
	srv := newTestServer(t)
	resp, body := post(t, srv, "/curve/evaluate", map[string]any{
		"points":          [][]contract.PayoutPoint{{{Outcome: 0, Payout: 0}, {Outcome: 1000, Payout: 1000}}},
		"totalCollateral": 1000,
		"outcomes":        []int64{500, 333},
	})
	mustStatus(t, resp, body, http.StatusOK)
	var out evaluateCurveResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Results) != 2 || out.Results[0].Payout != "500" || *out.Results[0].RoundedPayout != 500 {
		t.Fatalf("unexpected results %s", body)
	}
	if out.Results[1].Payout != "333" {
		t.Fatalf("unexpected payout at 333: %s", body)
	}
}

func TestEvaluateCurveErrors(t *testing.T) {
	srv := newTestServer(t)
	cases := []struct {
		name string
		body any
		want int
	}{
		{"malformed json", `{"points": [`, http.StatusBadRequest},
		{"unknown field", `{"pointz": []}`, http.StatusBadRequest},
		{"no outcomes", map[string]any{"points": [][]contract.PayoutPoint{{{Outcome: 0}, {Outcome: 1}}}}, http.StatusBadRequest},
		{"non-monotonic", map[string]any{
			"points":   [][]contract.PayoutPoint{{{Outcome: 5}, {Outcome: 1}}},
			"outcomes": []int64{1},
		}, http.StatusBadRequest},
		{"negative payout", map[string]any{
			"points":   [][]contract.PayoutPoint{{{Outcome: 0, Payout: 100}, {Outcome: 100, Payout: 0}}},
			"outcomes": []int64{200},
		}, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		resp, body := post(t, srv, "/curve/evaluate", tc.body)
		if resp.StatusCode != tc.want {
			t.Errorf("%s: status %d, want %d: %s", tc.name, resp.StatusCode, tc.want, body)
		}
	}
}

func TestCurveRanges(t *testing.T) {
	srv := newTestServer(t)
	resp, body := post(t, srv, "/curve/ranges", threeSegmentBody(false))
	mustStatus(t, resp, body, http.StatusOK)
	var first rangesResponse
	if err := json.Unmarshal(body, &first); err != nil {
		t.Fatal(err)
	}
	if len(first.Ranges) != 31 || first.Cached {
		t.Fatalf("expected 31 fresh ranges, got %d cached=%v", len(first.Ranges), first.Cached)
	}
	if last := first.Ranges[30]; last.OfferAmount != 3000 || last.AcceptAmount != 0 {
		t.Fatalf("unexpected final range %+v", last)
	}
	if first.Stats.Outcomes != 3001 || first.Stats.Max != 3000 {
		t.Fatalf("unexpected stats %+v", first.Stats)
	}

	resp, body = post(t, srv, "/curve/ranges", threeSegmentBody(true))
	mustStatus(t, resp, body, http.StatusOK)
	var second rangesResponse
	if err := json.Unmarshal(body, &second); err != nil {
		t.Fatal(err)
	}
	if !second.Cached || len(second.Ranges) != 31 {
		t.Fatalf("expected cached result, got cached=%v ranges=%d", second.Cached, len(second.Ranges))
	}
}

func TestCurveRangesErrors(t *testing.T) {
	srv := newTestServer(t)

	tooFar := threeSegmentBody(true)
	tooFar["lastOutcome"] = 60_000
	resp, body := post(t, srv, "/curve/ranges", tooFar)
	mustStatus(t, resp, body, http.StatusBadRequest)

	over := threeSegmentBody(false)
	over["totalCollateral"] = 2000
	resp, body = post(t, srv, "/curve/ranges", over)
	mustStatus(t, resp, body, http.StatusUnprocessableEntity)
}

func parlayBody() map[string]any {
	return map[string]any{
		"parameters": []contract.ParlayParameter{
			{DataType: contract.Price, Threshold: 50_000, Range: 20_000, Direction: contract.Above, Transformation: contract.Linear, Weight: 1},
			{DataType: contract.Hashrate, Threshold: 300, Range: 100, Direction: contract.Below, Transformation: contract.Linear, Weight: 1},
		},
		"combinationMethod": contract.WeightedAverage,
		"totalCollateral":   100_000,
	}
}

func TestEvaluateParlay(t *testing.T) {
	srv := newTestServer(t)
	req := parlayBody()
	req["values"] = []float64{60_000, 250}
	resp, body := post(t, srv, "/parlay/evaluate", req)
	mustStatus(t, resp, body, http.StatusOK)
	var out parlayEvaluateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatal(err)
	}
	if out.Fraction != 0.5 || out.PayoutAmount != 50_000 || out.OracleOutcome != 5000 {
		t.Fatalf("unexpected result %s", body)
	}

	req["values"] = []float64{60_000}
	resp, body = post(t, srv, "/parlay/evaluate", req)
	mustStatus(t, resp, body, http.StatusBadRequest)

	bad := parlayBody()
	bad["combinationMethod"] = "median"
	bad["values"] = []float64{1, 1}
	resp, body = post(t, srv, "/parlay/evaluate", bad)
	mustStatus(t, resp, body, http.StatusBadRequest)
}

func TestParlayHeatmap(t *testing.T) {
	srv := newTestServer(t)
	req := parlayBody()
	req["grid"] = map[string]any{"size": 5}
	resp, body := post(t, srv, "/parlay/heatmap", req)
	mustStatus(t, resp, body, http.StatusOK)
	var grid struct {
		Size  int `json:"size"`
		Cells [][]struct {
			Fraction float64 `json:"fraction"`
		} `json:"cells"`
	}
	if err := json.Unmarshal(body, &grid); err != nil {
		t.Fatal(err)
	}
	if grid.Size != 5 || len(grid.Cells) != 5 || len(grid.Cells[4]) != 5 {
		t.Fatalf("unexpected grid %s", body)
	}
}

func TestDataTypes(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/parlay/data-types")
	mustStatus(t, resp, body, http.StatusOK)
	var types []map[string]any
	if err := json.Unmarshal(body, &types); err != nil || len(types) != 3 {
		t.Fatalf("unexpected data types %s (%v)", body, err)
	}
}

func TestContractInput(t *testing.T) {
	srv := newTestServer(t)
	resp, body := post(t, srv, "/contract/input", map[string]any{
		"preset":      "default",
		"oracleInput": contract.OracleInput{PublicKeys: []string{"pk"}, EventID: "btc-usd", Threshold: 1},
		"feeRate":     3,
	})
	mustStatus(t, resp, body, http.StatusOK)
	var in struct {
		OfferCollateral int64 `json:"offerCollateral"`
		FeeRate         int64 `json:"feeRate"`
		ContractInfos   []struct {
			Oracle     contract.OracleInput `json:"oracleInput"`
			Descriptor struct {
				PayoutFunction [][]contract.PayoutPoint `json:"payoutFunction"`
			} `json:"contractDescriptor"`
		} `json:"contractInfos"`
	}
	if err := json.Unmarshal(body, &in); err != nil {
		t.Fatal(err)
	}
	if in.OfferCollateral != 1500 || in.FeeRate != 3 || len(in.ContractInfos) != 1 {
		t.Fatalf("unexpected contract input %s", body)
	}
	if in.ContractInfos[0].Oracle.EventID != "btc-usd" || len(in.ContractInfos[0].Descriptor.PayoutFunction) != 1 {
		t.Fatalf("unexpected contract info %s", body)
	}

	// no oracle
	resp, body = post(t, srv, "/contract/input", map[string]any{"preset": "default"})
	mustStatus(t, resp, body, http.StatusBadRequest)

	resp, body = post(t, srv, "/contract/input", map[string]any{"preset": "missing"})
	mustStatus(t, resp, body, http.StatusNotFound)
}

func TestPresets(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, "/presets")
	mustStatus(t, resp, body, http.StatusOK)
	var list struct {
		Presets []string `json:"presets"`
	}
	if err := json.Unmarshal(body, &list); err != nil || len(list.Presets) != 3 {
		t.Fatalf("unexpected preset list %s (%v)", body, err)
	}

	resp, body = get(t, srv, "/presets/default")
	mustStatus(t, resp, body, http.StatusOK)
	var p presetResponse
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatal(err)
	}
	if p.Kind != preset.KindCurve || len(p.Ranges) != 31 || p.Stats.Outcomes != 3001 {
		t.Fatalf("unexpected preset %s", body)
	}

	resp, body = get(t, srv, "/presets/parlay")
	mustStatus(t, resp, body, http.StatusOK)
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatal(err)
	}
	if p.Parlay == nil || p.LastOutcome != 1023 {
		t.Fatalf("unexpected parlay preset %s", body)
	}

	resp, body = get(t, srv, "/presets/missing")
	mustStatus(t, resp, body, http.StatusNotFound)

	resp, body = get(t, srv, "/presets/broken")
	mustStatus(t, resp, body, http.StatusInternalServerError)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/curve/ranges", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}
