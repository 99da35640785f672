package universe

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrInvalidInterval   = errors.New("step interval is out of range")
	ErrUnknownEngine     = errors.New("unknown engine")
)

//Options represents the Universe's configurable options
type Options struct {
	Width          int
	Height         int
	Interval       time.Duration //step interval of the running simulation
	MinInterval    time.Duration
	MaxInterval    time.Duration
	Engine         string //compute engine name, see EngineNames
	Workers        int    //workers of the multithreaded engine
	MaxSteps       int    //the running simulation stops after MaxSteps generations, 0 - unlimited
	StopWhenStable bool   //the running simulation stops when nothing changes or no cell is alive
}

//default options
const (
	DefWidth       = 40
	DefHeight      = 15
	DefInterval    = time.Millisecond * 100
	DefMinInterval = time.Millisecond * 10
	DefMaxInterval = time.Millisecond * 2000
	DefMaxSteps    = 1000
	MaxCells       = 1 << 26 //upper limit of Width*Height
)

var DefaultOptions = Options{
	Width:       DefWidth,
	Height:      DefHeight,
	Interval:    DefInterval,
	MinInterval: DefMinInterval,
	MaxInterval: DefMaxInterval,
	Engine:      EngineSimple,
	Workers:     DefWorkers,
	MaxSteps:    DefMaxSteps,
}

//Validate checks the options can be used to construct the Universe
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d, width and height must be positive", o.Width, o.Height)
	}
	//division keeps the check free of int overflow
	if o.Width > MaxCells/o.Height {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d exceeds %d cells", o.Width, o.Height, MaxCells)
	}
	if o.MinInterval <= 0 || o.MinInterval > o.MaxInterval {
		return errors.Wrapf(ErrInvalidInterval, "bounds [%v, %v]", o.MinInterval, o.MaxInterval)
	}
	if !o.intervalInRange(o.Interval) {
		return errors.Wrapf(ErrInvalidInterval, "%v is outside [%v, %v]", o.Interval, o.MinInterval, o.MaxInterval)
	}
	if _, ok := engines[o.Engine]; !ok {
		return errors.Wrapf(ErrUnknownEngine, "%q", o.Engine)
	}
	return nil
}

func (o Options) intervalInRange(d time.Duration) bool {
	return d >= o.MinInterval && d <= o.MaxInterval
}

//fileOptions is the JSON shape of the options file, intervals are in milliseconds
type fileOptions struct {
	Width          *int    `json:"width"`
	Height         *int    `json:"height"`
	IntervalMs     *int    `json:"interval_ms"`
	MinIntervalMs  *int    `json:"min_interval_ms"`
	MaxIntervalMs  *int    `json:"max_interval_ms"`
	Engine         *string `json:"engine"`
	Workers        *int    `json:"workers"`
	MaxSteps       *int    `json:"max_steps"`
	StopWhenStable *bool   `json:"stop_when_stable"`
}

//LoadOptions reads the options from the JSON file
//fields missing in the file keep the values of DefaultOptions
func LoadOptions(filename string) (Options, error) {
	o := DefaultOptions
	data, err := os.ReadFile(filename)
	if err != nil {
		return o, errors.Wrapf(err, "[LoadOptions] failed to read file: %+v", filename)
	}
	var f fileOptions
	if err = json.Unmarshal(data, &f); err != nil {
		return o, errors.Wrapf(err, "[LoadOptions] failed to unmarshal data from file: %+v", filename)
	}
	f.apply(&o)
	if err = o.Validate(); err != nil {
		return o, errors.Wrapf(err, "[LoadOptions] invalid options in file: %+v", filename)
	}
	return o, nil
}

func (f fileOptions) apply(o *Options) {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	if f.Width != nil {
		o.Width = *f.Width
	}
	if f.Height != nil {
		o.Height = *f.Height
	}
	if f.IntervalMs != nil {
		o.Interval = ms(*f.IntervalMs)
	}
	if f.MinIntervalMs != nil {
		o.MinInterval = ms(*f.MinIntervalMs)
	}
	if f.MaxIntervalMs != nil {
		o.MaxInterval = ms(*f.MaxIntervalMs)
	}
	if f.Engine != nil {
		o.Engine = *f.Engine
	}
	if f.Workers != nil {
		o.Workers = *f.Workers
	}
	if f.MaxSteps != nil {
		o.MaxSteps = *f.MaxSteps
	}
	if f.StopWhenStable != nil {
		o.StopWhenStable = *f.StopWhenStable
	}
}
