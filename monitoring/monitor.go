// Package monitoring serves a simulator over HTTP so that runs can be
// triggered and inspected while the process is alive.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/pagesim/sim/hooking"
	"github.com/sarchlab/pagesim/simulation"
)

// Monitor can turn a simulator into a server and allows external monitoring
// and controlling of the simulator.
type Monitor struct {
	simLock    sync.Mutex
	simulator  *simulation.Simulator
	portNumber int
	posCounter *hooking.PosCountHook

	resultsLock sync.Mutex
	results     []simulation.Result

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		posCounter: hooking.NewPosCountHook(),
	}
}

// minPortNumber is the lowest port the monitor listens on. Lower ports are
// replaced by a random one.
const minPortNumber = 1000

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < minPortNumber {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterSimulator sets the simulator to serve and attaches the monitor's
// hooks to it.
func (m *Monitor) RegisterSimulator(s *simulation.Simulator) {
	m.simulator = s
	s.AcceptHook(m)
	s.AcceptHook(m.posCounter)
}

// UnregisterSimulator detaches the monitor's hooks from the simulator it
// serves. Results collected so far are kept.
func (m *Monitor) UnregisterSimulator() {
	if m.simulator == nil {
		return
	}

	m.simulator.RemoveHook(m)
	m.simulator.RemoveHook(m.posCounter)
	m.simulator = nil
}

// Func tracks run progress and collects results.
func (m *Monitor) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case simulation.HookPosRunStart:
		policy, _ := ctx.Item.(simulation.Policy)
		runID, _ := ctx.Detail.(string)
		m.createProgressBar(runID, string(policy))
	case simulation.HookPosReference:
		if bar := m.currentProgressBar(); bar != nil {
			bar.IncrementFinished(1)
		}
	case simulation.HookPosRunEnd:
		if result, ok := ctx.Item.(simulation.Result); ok {
			m.resultsLock.Lock()
			m.results = append(m.results, result)
			m.resultsLock.Unlock()
		}
	}
}

// Results returns the results of all the runs observed.
func (m *Monitor) Results() []simulation.Result {
	m.resultsLock.Lock()
	defer m.resultsLock.Unlock()

	out := make([]simulation.Result, len(m.results))
	copy(out, m.results)

	return out
}

func (m *Monitor) createProgressBar(runID, name string) {
	bar := &ProgressBar{
		id:        runID,
		name:      name,
		startTime: time.Now(),
		total:     uint64(m.simulator.Config().SequenceLength),
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)
}

func (m *Monitor) currentProgressBar() *ProgressBar {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	if len(m.progressBars) == 0 {
		return nil
	}

	return m.progressBars[len(m.progressBars)-1]
}

// Router returns the HTTP routes of the monitor.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/config", m.config).Methods(http.MethodGet)
	r.HandleFunc("/api/stream", m.stream).Methods(http.MethodGet)
	r.HandleFunc("/api/run/{policy}", m.run).
		Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/api/results", m.listResults).Methods(http.MethodGet)
	r.HandleFunc("/api/progress", m.listProgressBars).Methods(http.MethodGet)
	r.HandleFunc("/api/counters", m.listCounters).Methods(http.MethodGet)
	r.HandleFunc("/api/simulator", m.simulatorDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/resource", m.listResources).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", m.collectProfile).Methods(http.MethodGet)

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() (string, error) {
	if m.simulator == nil {
		return "", fmt.Errorf("no simulator registered")
	}

	listener, err := net.Listen("tcp", m.listenAddress())
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	go func() {
		err := http.Serve(listener, m.Router())
		dieOnErr(err)
	}()

	return url, nil
}

func (m *Monitor) listenAddress() string {
	if m.portNumber >= minPortNumber {
		return ":" + strconv.Itoa(m.portNumber)
	}

	return ":0"
}

func (m *Monitor) config(w http.ResponseWriter, _ *http.Request) {
	m.writeJSON(w, m.simulator.Config())
}

type streamRsp struct {
	Addresses []uint64 `json:"addresses"`
	Display   string   `json:"display"`
}

func (m *Monitor) stream(w http.ResponseWriter, _ *http.Request) {
	addrs := m.simulator.ReferenceStream()

	m.writeJSON(w, streamRsp{
		Addresses: addrs,
		Display:   simulation.FormatStream(addrs),
	})
}

func (m *Monitor) run(w http.ResponseWriter, r *http.Request) {
	policy, err := simulation.ParsePolicy(mux.Vars(r)["policy"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	m.simLock.Lock()
	result := m.simulator.Run(policy)
	m.simLock.Unlock()

	m.writeJSON(w, result)
}

func (m *Monitor) listResults(w http.ResponseWriter, _ *http.Request) {
	m.writeJSON(w, m.Results())
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := make([]progressRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.snapshot())
	}
	m.progressBarsLock.Unlock()

	m.writeJSON(w, bars)
}

func (m *Monitor) listCounters(w http.ResponseWriter, _ *http.Request) {
	m.writeJSON(w, m.posCounter.Snapshot())
}

func (m *Monitor) simulatorDetails(w http.ResponseWriter, _ *http.Request) {
	m.simLock.Lock()
	defer m.simLock.Unlock()

	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.simulator)
	serializer.SetMaxDepth(2)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	m.writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, r *http.Request) {
	duration := time.Second

	if s := r.URL.Query().Get("ms"); s != "" {
		ms, err := strconv.Atoi(s)
		if err != nil || ms <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Error: invalid duration %q", s)

			return
		}

		duration = time.Duration(ms) * time.Millisecond
	}

	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	time.Sleep(duration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	m.writeJSON(w, prof)
}

func (m *Monitor) writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
