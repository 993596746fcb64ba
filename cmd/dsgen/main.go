// Command dsgen generates the test vector artifacts for the digital
// signature peripheral: the C header compiled into the device test
// harness and a CBOR record of the full set for later inspection.
//
// The run can be pinned with -seed to regenerate the same pools, IVs
// and key pool indices; the RSA keys themselves are drawn through
// crypto/rsa and are fresh on every run.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/hwvectors/dsgen/ds"
	"github.com/hwvectors/dsgen/ds/emit"
	"github.com/hwvectors/dsgen/utils"
)

// RecordName is the file name of the CBOR record artifact.
const RecordName = "digital_signature_test_cases.cbor"

var (
	flagOut      = flag.String("out", ".", "output directory for the generated artifacts")
	flagSeed     = flag.String("seed", "", "hex root seed pinning the run, empty draws a fresh one")
	flagCases    = flag.Int("cases", 0, "number of test cases, 0 selects the default")
	flagMessages = flag.Int("messages", 0, "number of pool messages, 0 selects the default")
	flagKeys     = flag.Int("keys", 0, "number of device hmac keys, 0 selects the default")
	flagRecord   = flag.Bool("record", true, "write the CBOR record next to the header")
)

func main() {

	flag.Parse()

	seed, err := hex.DecodeString(*flagSeed)
	if err != nil {
		log.Fatalf("invalid -seed: %v", err)
	}

	params, err := ds.NewParametersFromLiteral(ds.ParametersLiteral{
		Cases:    *flagCases,
		Messages: *flagMessages,
		Keys:     *flagKeys,
		Seed:     seed,
	})
	if err != nil {
		log.Fatalf("invalid parameters: %v", err)
	}

	g, err := ds.NewGenerator(params)
	if err != nil {
		log.Fatalf("cannot initialize generator: %v", err)
	}
	params = g.Parameters()

	fmt.Printf("root seed: %x\n", params.Seed())
	fmt.Printf("generating %d cases over %d messages and %d hmac keys\n",
		params.NumCases(), params.NumMessages(), params.NumKeys())

	bySize := map[int][]float64{}
	cases := make([]ds.TestCase, params.NumCases())
	for i := range cases {

		start := time.Now()
		tc, err := g.GenTestCase(i)
		if err != nil {
			log.Fatalf("case %d: %v", i, err)
		}
		elapsed := time.Since(start)

		cases[i] = tc
		bySize[tc.Bits] = append(bySize[tc.Bits], float64(elapsed.Milliseconds()))
		fmt.Printf("case %d: %d-bit key, hmac key %d, %s\n", i, tc.Bits, tc.KeyIdx, elapsed.Round(time.Millisecond))
	}

	vs := &ds.VectorSet{
		Params:   params,
		Keys:     g.KeyPool(),
		Messages: g.MessagePool(),
		Cases:    cases,
	}

	start := time.Now()
	if err := vs.Verify(); err != nil {
		log.Fatalf("verification failed: %v", err)
	}
	fmt.Printf("verified in %s\n", time.Since(start).Round(time.Millisecond))

	headerPath := filepath.Join(*flagOut, emit.HeaderName)
	f, err := os.Create(headerPath)
	if err != nil {
		log.Fatalf("cannot create %s: %v", headerPath, err)
	}
	if err := emit.Header(f, vs); err != nil {
		f.Close()
		log.Fatalf("cannot write %s: %v", headerPath, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("cannot close %s: %v", headerPath, err)
	}
	fmt.Printf("wrote %s\n", headerPath)

	if *flagRecord {
		data, err := vs.MarshalBinary()
		if err != nil {
			log.Fatalf("cannot serialize record: %v", err)
		}
		recordPath := filepath.Join(*flagOut, RecordName)
		if err := os.WriteFile(recordPath, data, 0o644); err != nil {
			log.Fatalf("cannot write %s: %v", recordPath, err)
		}
		fmt.Printf("wrote %s (%d bytes)\n", recordPath, len(data))
	}

	reportTimings(bySize)
}

// reportTimings prints per key size statistics of the case generation
// times, which are dominated by the RSA prime search.
func reportTimings(bySize map[int][]float64) {

	fmt.Println("case generation times:")
	for _, bits := range utils.GetSortedKeys(bySize) {

		samples := bySize[bits]
		mean, _ := stats.Mean(samples)
		median, _ := stats.Median(samples)
		stddev, _ := stats.StandardDeviation(samples)

		fmt.Printf("  %4d bit: n=%d mean=%.0fms median=%.0fms stddev=%.0fms\n",
			bits, len(samples), mean, median, stddev)
	}
}
