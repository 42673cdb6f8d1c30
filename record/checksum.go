package record

// Checksum computes the S-Record checksum: the one's complement of the low
// byte of the sum of the count byte, the low addrLen bytes of the address and
// every data byte. When addr is absent no address bytes are summed.
func Checksum(count byte, addr Address, addrLen int, data []byte) byte {
	sum := count

	if v, ok := addr.Get(); ok {
		for i := 0; i < addrLen && i < 4; i++ {
			sum += byte(v >> (8 * i))
		}
	}

	for _, b := range data {
		sum += b
	}

	return ^sum
}
