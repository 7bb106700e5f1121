package detect

import (
	"github.com/teslashibe/go-facemetrics/pkg/geom"
	"github.com/teslashibe/go-facemetrics/pkg/protocol"
)

// FromWire converts a protocol face payload into a Detection.
// Missing optional fields become their "unavailable" sentinels and
// unknown landmark names are skipped.
func FromWire(f protocol.FaceData, imageWidth, imageHeight int) Detection {
	d := NewDetection(f.Box, imageWidth, imageHeight)
	d.Pitch = f.Pitch
	d.Roll = f.Roll
	d.Yaw = f.Yaw
	d.Score = f.Score

	if len(f.Landmarks) > 0 {
		d.Landmarks = make(map[LandmarkKind]geom.Point, len(f.Landmarks))
		for name, p := range f.Landmarks {
			var k LandmarkKind
			if err := k.UnmarshalText([]byte(name)); err != nil {
				continue
			}
			d.Landmarks[k] = p
		}
	}

	if f.SmileProb != nil {
		d.SmileProb = *f.SmileProb
	}
	if f.LeftEyeOpenProb != nil {
		d.LeftEyeOpenProb = *f.LeftEyeOpenProb
	}
	if f.RightEyeOpenProb != nil {
		d.RightEyeOpenProb = *f.RightEyeOpenProb
	}
	if f.TrackingID != nil {
		d.TrackingID = *f.TrackingID
	}

	return d
}

// ToWire converts a Detection into its protocol payload.
func ToWire(d Detection) protocol.FaceData {
	f := protocol.FaceData{
		Box:   d.Box,
		Pitch: d.Pitch,
		Roll:  d.Roll,
		Yaw:   d.Yaw,
		Score: d.Score,
	}

	if len(d.Landmarks) > 0 {
		f.Landmarks = make(map[string]geom.Point, len(d.Landmarks))
		for k, p := range d.Landmarks {
			f.Landmarks[k.String()] = p
		}
	}

	if d.SmileProb >= 0 {
		v := d.SmileProb
		f.SmileProb = &v
	}
	if d.LeftEyeOpenProb >= 0 {
		v := d.LeftEyeOpenProb
		f.LeftEyeOpenProb = &v
	}
	if d.RightEyeOpenProb >= 0 {
		v := d.RightEyeOpenProb
		f.RightEyeOpenProb = &v
	}
	if d.TrackingID >= 0 {
		id := d.TrackingID
		f.TrackingID = &id
	}

	return f
}
