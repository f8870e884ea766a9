package packable

import (
	"testing"
	"time"

	"github.com/quickwritereader/xpacket/codec"
	"github.com/quickwritereader/xpacket/schema"
	"github.com/quickwritereader/xpacket/types"
)

var sinkFlat []byte

func benchEnvelope(b *testing.B, name string, hooks schema.Hooks) {
	const count = 1000
	c := codec.MustCompile[envelope](schema.MustRecord("envelope", []schema.Field{
		schema.Scalar("seqn", types.Width16),
		schema.Custom("meta", hooks),
		schema.Scalar("hops", types.Width8),
	}))
	in := envelope{Seqn: 1000, Meta: sensorMeta{Model: "bme280", Tags: []string{"indoor", "lab"}}, Hops: 3}
	buf := make([]byte, 256)
	var n int

	b.ReportAllocs()
	b.ResetTimer()

	start := time.Now()
	for i := 0; i < b.N; i++ {
		for j := 0; j < count; j++ {
			n, _ = c.Encode(buf, &in)
		}
	}
	elapsed := time.Since(start)

	b.StopTimer()
	sinkFlat = buf[:n]
	perPack := float64(elapsed.Nanoseconds()) / float64(b.N*count)
	opsPerSec := 1e9 / perPack
	b.Logf("%s: per-pack = %.2f ns/op, %.2f ops/sec", name, perPack, opsPerSec)
	b.Logf("%s size: %d bytes", name, len(sinkFlat))
}

func BenchmarkEnvelope_Msgpack(b *testing.B) {
	benchEnvelope(b, "Msgpack", Msgpack())
}

func BenchmarkEnvelope_JsonIter(b *testing.B) {
	benchEnvelope(b, "JsonIter", JSON())
}

func BenchmarkPrimitives_Packable(b *testing.B) {
	const count = 1000
	c := codec.MustCompile[reading](readingRecord())
	in := reading{Seqn: 1, Temp: -2, Ratio: 1.5, Online: true, Station: 7}
	buf := make([]byte, 32)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < count; j++ {
			_, _ = c.Encode(buf, &in)
		}
	}
}
