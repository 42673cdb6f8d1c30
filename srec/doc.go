// Package srec reads Motorola S-Record files and reconstructs binary images.
//
// # File Format
//
// An S-Record file is a sequence of record lines (see package record),
// terminated by "\n" or "\r\n". A typical S19 file:
//
//	S00F000068656C6C6F202020202000003C   header "hello     "
//	S111003848656C6C6F20776F726C642E0A0042   data at 0x0038
//	S5030001FB                           record count
//	S9030000FC                           termination
//
// The MOT type is decided by which data/termination pair the file uses:
// S1+S9 (S19), S2+S8 (S28) or S3+S7 (S37).
//
// # Usage
//
// Parse a file from disk:
//
//	f, err := srec.Parse("firmware.s19")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Type: %s, records: %d\n", f.MOTType(), f.Lines())
//	if f.HasHeader() {
//	    header, _ := f.HeaderContent()
//	    fmt.Printf("Header: %q\n", header)
//	}
//
// Write the binary image:
//
//	err = f.WriteBinaryFile("firmware.bin", srec.WithFill(0xFF))
//
// # Error Handling
//
// Parsing is all or nothing: the first line that does not start with 'S'
// (ErrNotSRecordFile) or does not parse (record.ErrInvalidFormat) aborts
// the parse, and the error carries the line number. Aggregate queries fail
// with ErrMissingAddress, ErrNoHeaderRecord or a *BinaryConversionError
// rather than substituting defaults. Use errors.Is to test for them.
package srec
