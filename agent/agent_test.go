package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/eashang1/terminal-s8/ipc"
)

const testConfig = `{"unitInformation":[
{"shorthand":"FF","cost1":1,"startHealth":60,"upgrade":{"cost1":1,"startHealth":120}},
{"shorthand":"EF","cost1":4,"startHealth":30,"upgrade":{"cost1":4}},
{"shorthand":"DF","cost1":2,"attackDamageWalker":5,"attackRange":2.5,"startHealth":75,"upgrade":{"cost1":4,"attackDamageWalker":15,"attackRange":3.5}},
{"shorthand":"PI","cost2":1,"attackDamageWalker":2,"attackRange":3.5,"startHealth":12},
{"shorthand":"EI","cost2":3,"attackDamageWalker":8,"attackRange":4.5,"startHealth":5},
{"shorthand":"SI","cost2":1,"attackDamageWalker":20,"attackRange":4.5,"startHealth":40},
{"shorthand":"RM"},
{"shorthand":"UP"}],"resources":{}}`

const emptyUnits = `[[],[],[],[],[],[],[],[]]`

func frameLine(phase, turn int, sp, mp float64, extra string) string {
	b, _ := json.Marshal(map[string]any{
		"turnInfo": []int{phase, turn, 0},
		"p1Stats":  []float64{30, sp, mp, 0},
		"p2Stats":  []float64{30, 0, 0, 0},
	})
	s := strings.TrimSuffix(string(b), "}")
	s += `,"p1Units":` + emptyUnits + `,"p2Units":` + emptyUnits
	if extra != "" {
		s += "," + extra
	}
	return s + "}"
}

type stackEntry struct {
	shorthand string
	x, y      int
}

func decodeStack(t *testing.T, line string) []stackEntry {
	t.Helper()
	var raw [][]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		t.Fatalf("decode stack %q: %v", line, err)
	}
	out := make([]stackEntry, len(raw))
	for i, e := range raw {
		out[i] = stackEntry{e[0].(string), int(e[1].(float64)), int(e[2].(float64))}
	}
	return out
}

func count(stack []stackEntry, want stackEntry) int {
	n := 0
	for _, e := range stack {
		if e == want {
			n++
		}
	}
	return n
}

func TestAgentPlaysMatch(t *testing.T) {
	input := strings.Join([]string{
		strings.ReplaceAll(testConfig, "\n", ""),
		frameLine(0, 0, 1000, 5, ""),
		frameLine(1, 0, 0, 0, `"events":{"breach":[[[5,8],1,3,"7",2],[[22,13],1,3,"8",1]]}`),
		frameLine(1, 0, 0, 0, `"events":{"breach":[["bad"]]}`),
		frameLine(0, 8, 1000, 5, ""),
		frameLine(2, 9, 0, 0, ""),
	}, "\n")

	var out bytes.Buffer
	conn := ipc.NewConnection(strings.NewReader(input), &out, nil)
	o := newTestOrchestrator(t)
	New(conn, o, nil).Register(conn)

	if err := conn.ReadLoop(context.Background()); err != nil {
		t.Fatalf("ReadLoop: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("sent %d lines, want 4:\n%s", len(lines), out.String())
	}

	build0, deploy0 := decodeStack(t, lines[0]), decodeStack(t, lines[1])
	if count(build0, stackEntry{"DF", 2, 12}) != 1 || count(build0, stackEntry{"UP", 2, 12}) != 1 {
		t.Errorf("turn 0 build stack is missing the base turret: %v", build0)
	}
	if len(deploy0) != 0 {
		t.Errorf("turn 0 deployed %v, want nothing", deploy0)
	}

	build8, deploy8 := decodeStack(t, lines[2]), decodeStack(t, lines[3])
	if count(build8, stackEntry{"DF", 5, 9}) != 1 {
		t.Errorf("turn 8 build stack has no reinforcement at (5, 9): %v", build8)
	}
	if count(build8, stackEntry{"FF", 13, 9}) != 1 {
		t.Errorf("turn 8 build stack should seal the chokepoint: %v", build8)
	}
	if got := count(deploy8, stackEntry{"PI", 4, 9}); got != 5 {
		t.Errorf("turn 8 deployed %d scouts at (4, 9), want 5", got)
	}

	if got := o.Breaches(); len(got) != 1 {
		t.Errorf("breach log = %v, want only the opponent breach", got)
	}
}

func TestHandleTurnBeforeConfig(t *testing.T) {
	a := New(nil, newTestOrchestrator(t), nil)
	env := ipc.Envelope{Type: ipc.TypeTurn, Data: json.RawMessage(frameLine(0, 1, 0, 0, ""))}
	if err := a.HandleTurn(context.Background(), env); !errors.Is(err, ErrNoConfig) {
		t.Errorf("HandleTurn error = %v, want ErrNoConfig", err)
	}
}

func TestHandleConfigRejectsShortRoster(t *testing.T) {
	a := New(nil, newTestOrchestrator(t), nil)
	env := ipc.Envelope{Type: ipc.TypeConfig, Data: json.RawMessage(`{"unitInformation":[{"shorthand":"FF"}]}`)}
	if err := a.HandleConfig(context.Background(), env); err == nil {
		t.Error("expected an error for a config with one unit")
	}
}
