// Package monitoring turns a running keyer into a web server that shows its
// state and lets a user operate simulated paddles and the speed control.
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
	"strings"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/elkey/device"
	"github.com/sarchlab/elkey/hw"
	"github.com/sarchlab/elkey/monitoring/web"
	"github.com/sarchlab/elkey/paddle"
	"github.com/sarchlab/elkey/sim"
	"github.com/sarchlab/elkey/speed"
	"github.com/sarchlab/elkey/stimulus"
)

// Monitor can turn a keyer into a server and allows external monitoring and
// controlling of the keyer. Paddle and speed changes requested over HTTP are
// scheduled on the engine, so that they happen in the keyer's own context.
type Monitor struct {
	engine     sim.Engine
	keyer      *device.Keyer
	components []sim.Component
	stimuli    *stimulus.Driver
	speedInput *hw.SimAnalog
	portNumber int
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine registers the engine that runs the keyer.
func (m *Monitor) RegisterEngine(e sim.Engine) {
	m.engine = e
}

// RegisterKeyer registers the keyer whose state is reported. The keyer is
// also registered as a component.
func (m *Monitor) RegisterKeyer(k *device.Keyer) {
	m.keyer = k
	m.RegisterComponent(k)
}

// RegisterComponent register a component to be inspected.
func (m *Monitor) RegisterComponent(c sim.Component) {
	m.components = append(m.components, c)
}

// RegisterStimulus sets the driver that moves the simulated paddles.
func (m *Monitor) RegisterStimulus(d *stimulus.Driver) {
	m.stimuli = d
}

// RegisterSpeedInput sets the simulated speed control.
func (m *Monitor) RegisterSpeedInput(a *hw.SimAnalog) {
	m.speedInput = a
}

// Router returns the HTTP routes of the monitor.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	fs := web.GetAssets()
	fServer := http.FileServer(fs)
	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/state", m.state)
	r.HandleFunc("/api/list_components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.listComponentDetails)
	r.HandleFunc("/api/paddle/{name}/{level}", m.setPaddle)
	r.HandleFunc("/api/speed/{reading}", m.setSpeed)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(fServer)

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() string {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring keyer with %s\n", url)

	router := m.Router()
	go func() {
		err := http.Serve(listener, router)
		dieOnErr(err)
	}()

	return url
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	now := m.engine.CurrentTime()
	fmt.Fprintf(w, "{\"now\":%d}", now)
}

type stateRsp struct {
	Now        uint64  `json:"now"`
	Element    string  `json:"element"`
	Ready      bool    `json:"ready"`
	DahCounter uint8   `json:"dah_counter"`
	Keyed      bool    `json:"keyed"`
	Paddles    string  `json:"paddles"`
	Debouncing bool    `json:"debouncing"`
	Sleep      string  `json:"sleep"`
	Interval   uint64  `json:"interval"`
	WPM        float64 `json:"wpm"`
	Ticks      uint64  `json:"ticks"`
	Sleeps     uint64  `json:"sleeps"`
	Wakes      uint64  `json:"wakes"`
}

func (m *Monitor) state(w http.ResponseWriter, _ *http.Request) {
	if m.keyer == nil {
		http.Error(w, "no keyer registered", http.StatusNotFound)
		return
	}

	k := m.keyer
	s := k.Machine().Snapshot()
	interval := k.Speed().Last()

	rsp := stateRsp{
		Now:        uint64(m.engine.CurrentTime()),
		Element:    s.Element.String(),
		Ready:      s.Ready,
		DahCounter: s.DahCounter,
		Keyed:      k.Output().Keyed(),
		Paddles:    k.Sampler().Read().String(),
		Debouncing: k.Sampler().Debouncing(),
		Sleep:      k.Power().State().String(),
		Interval:   uint64(interval),
		WPM:        speed.IntervalToWPM(interval, k.Config().Freq()),
		Ticks:      k.Ticks(),
		Sleeps:     k.Power().Sleeps(),
		Wakes:      k.Power().Wakes(),
	}

	writeJSON(w, rsp)
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(m.components))
	for _, c := range m.components {
		names = append(names, c.Name())
	}

	writeJSON(w, names)
}

func (m *Monitor) listComponentDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	component := m.findComponentOr404(w, name)
	if component == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(component)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) setPaddle(w http.ResponseWriter, r *http.Request) {
	if m.stimuli == nil {
		http.Error(w, "paddles are not simulated", http.StatusNotFound)
		return
	}

	vars := mux.Vars(r)

	line, err := paddle.ParseLine(strings.ToLower(vars["name"]))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	level, err := parseLevel(vars["level"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m.stimuli.Set(line, level)
	w.WriteHeader(http.StatusOK)
}

func parseLevel(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "down", "press":
		return true, nil
	case "up", "release":
		return false, nil
	}

	return strconv.ParseBool(s)
}

type speedEvent struct {
	*sim.EventBase

	reading uint8
}

func (m *Monitor) setSpeed(w http.ResponseWriter, r *http.Request) {
	if m.speedInput == nil {
		http.Error(w, "speed control is not simulated", http.StatusNotFound)
		return
	}

	reading, err := strconv.ParseUint(mux.Vars(r)["reading"], 10, 8)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m.engine.Schedule(speedEvent{
		EventBase: sim.NewEventBase(m.engine.CurrentTime(), m),
		reading:   uint8(reading),
	})
	w.WriteHeader(http.StatusOK)
}

// Handle applies the speed changes requested over HTTP.
func (m *Monitor) Handle(e sim.Event) error {
	evt, ok := e.(speedEvent)
	if !ok {
		return fmt.Errorf("monitor cannot handle event of type %T", e)
	}

	m.speedInput.Set(evt.reading)

	return nil
}

func (m *Monitor) findComponentOr404(
	w http.ResponseWriter,
	name string,
) sim.Component {
	var component sim.Component
	for _, c := range m.components {
		if c.Name() == name {
			component = c
		}
	}

	if component == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Component not found"))
		dieOnErr(err)
	}

	return component
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

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	writeJSON(w, rsp)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
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
