/*
 * MinIO Cloud Storage, (C) 2022 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package lazyjson_benchmarks

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/buger/jsonparser"
	jsoniter "github.com/json-iterator/go"

	"github.com/go-lazyjson/lazyjson"
)

// buildPayload mirrors benchmarkPayload in the root package's
// benchmarks_test.go: a "users" array of n flat records, large enough to
// make offset-cached random access worth measuring against full decode.
func buildPayload(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"users":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"id":1234567890,"username":"user_name_example","slug":"example-slug"}`)
	}
	buf.WriteString(`]}`)
	return buf.Bytes()
}

func benchmarkEncodingJSON(b *testing.B, msg []byte) {
	b.SetBytes(int64(len(msg)))
	b.ReportAllocs()
	b.ResetTimer()
	var parsed interface{}
	for i := 0; i < b.N; i++ {
		if err := json.Unmarshal(msg, &parsed); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkJsoniter(b *testing.B, msg []byte) {
	b.SetBytes(int64(len(msg)))
	b.ReportAllocs()
	b.ResetTimer()
	var cfg = jsoniter.ConfigCompatibleWithStandardLibrary
	var parsed interface{}
	for i := 0; i < b.N; i++ {
		if err := cfg.Unmarshal(msg, &parsed); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkLazyJSON(b *testing.B, msg []byte) {
	b.SetBytes(int64(len(msg)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := lazyjson.DecodeValue(lazyjson.NewSource(msg)); err != nil {
			b.Fatal(err)
		}
	}
}

// benchmarkLazyJSONUsernameOnly pulls a single field out of every record
// without decoding the rest, the scenario the teacher's BugerJsonParserLarge
// and this package's BenchmarkBugerJsonParserUsernames exist to measure.
func benchmarkLazyJSONUsernameOnly(b *testing.B, msg []byte) {
	b.SetBytes(int64(len(msg)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h, err := lazyjson.ParseValue(lazyjson.NewSource(msg), lazyjson.WithCache(false))
		if err != nil {
			b.Fatal(err)
		}
		users, _, err := h.Get("users")
		if err != nil {
			b.Fatal(err)
		}
		it := users.Elements()
		for {
			_, rec, more, err := it.Next()
			if err != nil {
				b.Fatal(err)
			}
			if !more {
				break
			}
			name, ok, err := rec.Property("username")
			if err != nil || !ok {
				b.Fatal("username lookup failed:", err)
			}
			if _, err := name.StringValue(); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkEncodingJsonUsers(b *testing.B) { benchmarkEncodingJSON(b, buildPayload(500)) }
func BenchmarkJsoniterUsers(b *testing.B)     { benchmarkJsoniter(b, buildPayload(500)) }
func BenchmarkLazyJSONUsers(b *testing.B)     { benchmarkLazyJSON(b, buildPayload(500)) }
func BenchmarkLazyJSONUsersFieldScan(b *testing.B) {
	benchmarkLazyJSONUsernameOnly(b, buildPayload(500))
}

// BenchmarkBugerJsonParserUsernames mirrors the teacher's
// BenchmarkBugerJsonParserLarge: jsonparser.ArrayEach/Get pull individual
// fields out of a large payload without materialising the rest, the same
// no-allocation-lookup niche as lazyjson's cached Property/At access.
func BenchmarkBugerJsonParserUsernames(b *testing.B) {
	msg := buildPayload(500)
	const logVals = false
	b.SetBytes(int64(len(msg)))
	b.ReportAllocs()
	b.ResetTimer()
	var dump int
	for i := 0; i < b.N; i++ {
		_, err := jsonparser.ArrayEach(msg, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
			sval, _, _, _ := jsonparser.Get(value, "username")
			if logVals && i == 0 {
				b.Log(string(sval))
			}
			dump += len(sval)
		}, "users")
		if err != nil {
			b.Fatal(err)
		}
	}
	if dump == 0 {
		b.Log("")
	}
}
