package models

import (
	"encoding/json"
	"strings"
)

// Power keys addressed by the "all" device.
const (
	DeviceMain    = "main"
	DeviceModule1 = "module1"
	DeviceModule2 = "module2"
	DeviceModule3 = "module3"
	DeviceAll     = "all"

	powerKeyPrefix = "power_"
)

// DeviceStatus is the control panel snapshot served by /api/status.
type DeviceStatus struct {
	PowerMain     bool    `json:"power_main"`
	PowerModule1  bool    `json:"power_module1"`
	PowerModule2  bool    `json:"power_module2"`
	PowerModule3  bool    `json:"power_module3"`
	Temperature   float64 `json:"temperature"` // °C
	Humidity      float64 `json:"humidity"`    // %RH
	AirQuality    string  `json:"air_quality"`
	Ventilation   string  `json:"ventilation"`
	SafetyLevel   string  `json:"safety_level"`
	DevicesOnline int     `json:"devices_online"`
	DevicesTotal  int     `json:"devices_total"`

	// ExtraPower holds power_{device} flags for devices outside main/module1..3,
	// keyed by device name. Encoded inline next to the fixed keys.
	ExtraPower map[string]bool `json:"-"`
}

// DefaultDeviceStatus returns the panel state the simulator boots with.
func DefaultDeviceStatus() DeviceStatus {
	return DeviceStatus{
		PowerMain:     true,
		PowerModule1:  true,
		PowerModule2:  false,
		PowerModule3:  true,
		Temperature:   22.5,
		Humidity:      45.0,
		AirQuality:    "良好",
		Ventilation:   "正常",
		SafetyLevel:   "A级",
		DevicesOnline: 12,
		DevicesTotal:  12,
	}
}

// PowerKey returns the status key for a device, e.g. "power_module2".
func PowerKey(device string) string {
	return powerKeyPrefix + device
}

// SetPower switches one device. Unknown device names get their own key.
func (s *DeviceStatus) SetPower(device string, on bool) {
	switch device {
	case DeviceMain:
		s.PowerMain = on
	case DeviceModule1:
		s.PowerModule1 = on
	case DeviceModule2:
		s.PowerModule2 = on
	case DeviceModule3:
		s.PowerModule3 = on
	default:
		if s.ExtraPower == nil {
			s.ExtraPower = make(map[string]bool)
		}
		s.ExtraPower[device] = on
	}
}

// SetAllPower switches main and every module. Extra devices are left alone.
func (s *DeviceStatus) SetAllPower(on bool) {
	s.PowerMain = on
	s.PowerModule1 = on
	s.PowerModule2 = on
	s.PowerModule3 = on
}

// Power reports the flag for device and whether the key exists.
func (s DeviceStatus) Power(device string) (on bool, ok bool) {
	switch device {
	case DeviceMain:
		return s.PowerMain, true
	case DeviceModule1:
		return s.PowerModule1, true
	case DeviceModule2:
		return s.PowerModule2, true
	case DeviceModule3:
		return s.PowerModule3, true
	}
	on, ok = s.ExtraPower[device]
	return on, ok
}

// Clone returns a copy that shares no map with s.
func (s DeviceStatus) Clone() DeviceStatus {
	out := s
	if s.ExtraPower != nil {
		out.ExtraPower = make(map[string]bool, len(s.ExtraPower))
		for k, v := range s.ExtraPower {
			out.ExtraPower[k] = v
		}
	}
	return out
}

// deviceStatusFields is DeviceStatus without the custom codec.
type deviceStatusFields DeviceStatus

// MarshalJSON flattens ExtraPower into the object as power_{device} keys.
// Fixed keys win over an extra entry with the same name.
func (s DeviceStatus) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(deviceStatusFields(s))
	if err != nil || len(s.ExtraPower) == 0 {
		return base, err
	}

	obj := make(map[string]json.RawMessage)
	if err := json.Unmarshal(base, &obj); err != nil {
		return nil, err
	}
	for device, on := range s.ExtraPower {
		key := PowerKey(device)
		if _, exists := obj[key]; exists {
			continue
		}
		if on {
			obj[key] = json.RawMessage("true")
		} else {
			obj[key] = json.RawMessage("false")
		}
	}
	return json.Marshal(obj)
}

// UnmarshalJSON reads the fixed keys and collects any other boolean power_* key.
func (s *DeviceStatus) UnmarshalJSON(data []byte) error {
	var fields deviceStatusFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	for key, raw := range obj {
		if !strings.HasPrefix(key, powerKeyPrefix) {
			continue
		}
		device := strings.TrimPrefix(key, powerKeyPrefix)
		if isFixedDevice(device) {
			continue
		}
		var on bool
		if err := json.Unmarshal(raw, &on); err != nil {
			continue
		}
		if fields.ExtraPower == nil {
			fields.ExtraPower = make(map[string]bool)
		}
		fields.ExtraPower[device] = on
	}

	*s = DeviceStatus(fields)
	return nil
}

func isFixedDevice(device string) bool {
	switch device {
	case DeviceMain, DeviceModule1, DeviceModule2, DeviceModule3:
		return true
	}
	return false
}
