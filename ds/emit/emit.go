// Package emit renders vector sets into the C header compiled into
// the device test harness. Array names, field names and the element
// type are part of the contract with the harness and must not change.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/hwvectors/dsgen/ds"
	"github.com/hwvectors/dsgen/utils/bignum"
)

// HeaderName is the file name the harness build expects.
const HeaderName = "digital_signature_test_cases.h"

// Header renders the complete C header for a vector set: the HMAC key
// pool, the message pool and one encrypt_testcase_t per case. The set
// is rendered as is; run Verify before emitting.
func Header(w io.Writer, vs *ds.VectorSet) error {

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "/* File generated by dsgen */\n\n")

	fmt.Fprintf(bw, "#define NUM_HMAC_KEYS %d\n\n", len(vs.Keys))
	fmt.Fprintf(bw, "static const uint8_t test_hmac_keys[NUM_HMAC_KEYS][%d] = {\n", ds.HMACKeySize)
	for _, key := range vs.Keys {
		fmt.Fprintf(bw, "    %s,\n", byteList(key))
	}
	fmt.Fprintf(bw, "};\n\n")

	fmt.Fprintf(bw, "#define NUM_MESSAGES %d\n\n", len(vs.Messages))
	fmt.Fprintf(bw, "static const uint32_t test_messages[NUM_MESSAGES][%d/32] = {\n", ds.MaxBits)
	for i, m := range vs.Messages {
		words, err := wordList(m)
		if err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		fmt.Fprintf(bw, "    // Message %d\n", i)
		fmt.Fprintf(bw, "    %s,\n", words)
	}
	fmt.Fprintf(bw, "};\n\n")

	fmt.Fprintf(bw, "#define NUM_CASES %d\n\n", len(vs.Cases))
	fmt.Fprintf(bw, "static const encrypt_testcase_t test_cases[NUM_CASES] = {\n")
	for i := range vs.Cases {
		if err := writeCase(bw, i, &vs.Cases[i]); err != nil {
			return fmt.Errorf("case %d: %w", i, err)
		}
	}
	fmt.Fprintf(bw, "};\n")

	return bw.Flush()
}

func writeCase(w *bufio.Writer, idx int, tc *ds.TestCase) error {

	y, err := wordList(tc.Key.Y)
	if err != nil {
		return err
	}
	m, err := wordList(tc.Key.M)
	if err != nil {
		return err
	}
	rb, err := wordList(tc.Mont.Rb)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "    { /* Case %d */\n", idx)
	fmt.Fprintf(w, "        .iv = %s,\n", byteList(tc.IV[:]))
	fmt.Fprintf(w, "        .p_data = {\n")
	fmt.Fprintf(w, "            .Y = %s,\n", y)
	fmt.Fprintf(w, "            .M = %s,\n", m)
	fmt.Fprintf(w, "            .Rb = %s,\n", rb)
	fmt.Fprintf(w, "            .M_prime = 0x%08x,\n", tc.Mont.MPrime)
	fmt.Fprintf(w, "            .length = %d, // %d bit\n", tc.Mont.Length, tc.Bits)
	fmt.Fprintf(w, "        },\n")
	fmt.Fprintf(w, "        .expected_c = %s,\n", byteList(tc.Ciphertext))
	fmt.Fprintf(w, "        .hmac_key_idx = %d,\n", tc.KeyIdx)
	fmt.Fprintf(w, "        .expected_results = {\n")
	for j, r := range tc.Expected {
		words, err := wordList(r)
		if err != nil {
			return fmt.Errorf("result %d: %w", j, err)
		}
		fmt.Fprintf(w, "            // Message %d\n", j)
		fmt.Fprintf(w, "            %s,\n", words)
	}
	fmt.Fprintf(w, "        },\n")
	fmt.Fprintf(w, "    },\n")
	return nil
}

// wordList renders x as a little-endian word initializer, trimmed at
// the most significant nonzero word. A zero value still renders one
// word so that the initializer is never empty.
func wordList(x *big.Int) (string, error) {

	n := bignum.WordLen(x)
	if n == 0 {
		n = 1
	}
	words, err := bignum.WordsLE(x, n)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fmt.Sprintf("0x%08x", w)
	}
	return "{ " + strings.Join(parts, ", ") + " }", nil
}

// byteList renders b as a byte initializer.
func byteList(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("0x%02x", v)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
