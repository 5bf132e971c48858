package scpdsi

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

func writeFloats(fp string, f []float64) error {
	f32 := func() []float32 {
		o := make([]float32, len(f))
		for i, v := range f {
			o[i] = float32(v)
		}
		return o
	}()
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, f32); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	return nil
}

// SaveToBins writes the computed fields (and the calibrated coefficient
// grids, when present) as little-endian float32 binaries under the given
// path prefix.
func SaveToBins(outdirprfx string, z, pdsi *Field, cal *Calibration) error {
	if err := writeFloats(outdirprfx+"z.bin", z.Vals); err != nil {
		return err
	}
	if err := writeFloats(outdirprfx+"pdsi.bin", pdsi.Vals); err != nil {
		return err
	}
	if cal == nil {
		return nil
	}
	if err := writeFloats(outdirprfx+"p.bin", cal.P.Vals); err != nil {
		return err
	}
	if err := writeFloats(outdirprfx+"q.bin", cal.Q.Vals); err != nil {
		return err
	}
	return writeFloats(outdirprfx+"nse.bin", cal.NSE.Vals)
}
