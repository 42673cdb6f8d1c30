// Package record parses and formats single Motorola S-Record lines.
//
// # S-Record Line Format
//
// Every line is ASCII, two hex characters per byte:
//
//	S[Type(1)][Count(2)][Address(4|6|8)][Data(variable)][Checksum(2)]
//
// Example line:
//
//	S1050038486515
//	  S  = record marker
//	  1  = record type (S1: data, 16-bit address)
//	  05 = byte count (address + data + checksum)
//	  0038 = address
//	  4865 = data
//	  15 = checksum
//
// The address width is fixed by the record type:
//
//	S0 2 bytes   header
//	S1 2 bytes   data
//	S2 3 bytes   data
//	S3 4 bytes   data
//	S5 2 bytes   record count
//	S7 4 bytes   termination (start address)
//	S8 3 bytes   termination (start address)
//	S9 2 bytes   termination (start address)
//
// S4 and S6 are reserved and classify as GroupUnknown, which uses a 3 byte
// address when slicing the line.
//
// # Usage
//
//	rec, err := record.Parse("S1050038486515")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	addr, _ := rec.Address().Get()
//	fmt.Printf("type=%s addr=0x%04X data=% X\n", rec.Type(), addr, rec.Data())
//
//	if !rec.IsChecksumValid() {
//	    fmt.Printf("checksum 0x%02X, expected 0x%02X\n", rec.Checksum(), rec.CalcChecksum())
//	}
//
// # Validation
//
// Parse only checks structure. The predicates IsTypeValid, IsCountValid and
// IsChecksumValid never fail; the caller decides whether an invalid record is
// rejected, reported or repaired.
package record
