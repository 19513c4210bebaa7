package device

import "context"

// EnvironmentSensorAttributes are air quality and climate readings. Each
// model reports a different subset.
type EnvironmentSensorAttributes struct {
	Attributes
	CurrentTemperature *float64 `json:"current_temperature,omitempty"` // °C
	CurrentRH          *float64 `json:"current_r_h,omitempty"`         // % relative humidity
	CurrentPM25        *int     `json:"current_p_m25,omitempty"`       // µg/m³
	MaxMeasuredPM25    *int     `json:"max_measured_p_m25,omitempty"`
	MinMeasuredPM25    *int     `json:"min_measured_p_m25,omitempty"`
	VOCIndex           *int     `json:"voc_index,omitempty"`
	BatteryPercentage  *int     `json:"battery_percentage,omitempty"`
}

// EnvironmentSensor reports temperature, humidity and particulates.
type EnvironmentSensor struct {
	Core
	Attributes EnvironmentSensorAttributes `json:"attributes"`
}

func (s *EnvironmentSensor) Kind() Kind { return KindEnvironmentSensor }

func (s *EnvironmentSensor) Common() *Attributes { return &s.Attributes.Attributes }

// Reload refreshes the sensor from the hub.
func (s *EnvironmentSensor) Reload(ctx context.Context) error {
	return reload(ctx, s, KindEnvironmentSensor)
}

// SetName renames the sensor.
func (s *EnvironmentSensor) SetName(ctx context.Context, name string) error {
	if err := s.setName(ctx, name); err != nil {
		return err
	}
	s.Attributes.CustomName = name
	return nil
}

// Condition is one end of a motion sensor's active schedule. Time is either
// a clock time ("22:00") or "sunrise"/"sunset" with an offset in minutes.
type Condition struct {
	Time   string `json:"time"`
	Offset *int   `json:"offset,omitempty"`
}

// Schedule bounds when a motion sensor triggers its bound devices.
type Schedule struct {
	OnCondition  *Condition `json:"on_condition,omitempty"`
	OffCondition *Condition `json:"off_condition,omitempty"`
}

// SensorConfig is a motion sensor's behaviour configuration.
type SensorConfig struct {
	ScheduleOn *bool     `json:"schedule_on,omitempty"`
	OnDuration *int      `json:"on_duration,omitempty"` // seconds
	Schedule   *Schedule `json:"schedule,omitempty"`
}

// MotionSensorAttributes are presence readings and configuration.
type MotionSensorAttributes struct {
	Attributes
	IsOn              *bool         `json:"is_on,omitempty"`
	IsDetected        *bool         `json:"is_detected,omitempty"`
	LightLevel        *float64      `json:"light_level,omitempty"` // lux on models with a light sensor
	BatteryPercentage *int          `json:"battery_percentage,omitempty"`
	SensorConfig      *SensorConfig `json:"sensor_config,omitempty"`
}

// MotionSensor detects presence.
type MotionSensor struct {
	Core
	Attributes MotionSensorAttributes `json:"attributes"`
}

func (s *MotionSensor) Kind() Kind { return KindMotionSensor }

func (s *MotionSensor) Common() *Attributes { return &s.Attributes.Attributes }

// Reload refreshes the sensor from the hub.
func (s *MotionSensor) Reload(ctx context.Context) error {
	return reload(ctx, s, KindMotionSensor)
}

// SetName renames the sensor.
func (s *MotionSensor) SetName(ctx context.Context, name string) error {
	if err := s.setName(ctx, name); err != nil {
		return err
	}
	s.Attributes.CustomName = name
	return nil
}

// OpenCloseSensorAttributes are door and window contact readings.
type OpenCloseSensorAttributes struct {
	Attributes
	IsOpen            bool `json:"is_open"`
	BatteryPercentage *int `json:"battery_percentage,omitempty"`
}

// OpenCloseSensor is a door or window contact.
type OpenCloseSensor struct {
	Core
	Attributes OpenCloseSensorAttributes `json:"attributes"`
}

func (s *OpenCloseSensor) Kind() Kind { return KindOpenCloseSensor }

func (s *OpenCloseSensor) Common() *Attributes { return &s.Attributes.Attributes }

// Reload refreshes the sensor from the hub.
func (s *OpenCloseSensor) Reload(ctx context.Context) error {
	return reload(ctx, s, KindOpenCloseSensor)
}

// SetName renames the sensor.
func (s *OpenCloseSensor) SetName(ctx context.Context, name string) error {
	if err := s.setName(ctx, name); err != nil {
		return err
	}
	s.Attributes.CustomName = name
	return nil
}

// WaterSensorAttributes are leak readings.
type WaterSensorAttributes struct {
	Attributes
	WaterLeakDetected bool `json:"water_leak_detected"`
	BatteryPercentage *int `json:"battery_percentage,omitempty"`
}

// WaterSensor detects leaks.
type WaterSensor struct {
	Core
	Attributes WaterSensorAttributes `json:"attributes"`
}

func (s *WaterSensor) Kind() Kind { return KindWaterSensor }

func (s *WaterSensor) Common() *Attributes { return &s.Attributes.Attributes }

// Reload refreshes the sensor from the hub.
func (s *WaterSensor) Reload(ctx context.Context) error {
	return reload(ctx, s, KindWaterSensor)
}

// SetName renames the sensor.
func (s *WaterSensor) SetName(ctx context.Context, name string) error {
	if err := s.setName(ctx, name); err != nil {
		return err
	}
	s.Attributes.CustomName = name
	return nil
}
