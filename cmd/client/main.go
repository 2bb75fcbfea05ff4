// Command client exercises the service end to end: it posts a WAV file
// (or a generated test tone when no file is given) to the upload endpoint
// and writes the returned PDF to disk.
package main

import (
	"bytes"
	"flag"
	"io"
	"log"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/Prakashdeveloper01/Audio-file/internal/audio"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "Service base URL")
	inPath := flag.String("file", "", "WAV file to upload (a 1s 440Hz tone is generated when empty)")
	outPath := flag.String("out", "transcribed.pdf", "Where to write the returned PDF")
	flag.Parse()

	var wavData []byte
	var err error

	if *inPath != "" {
		wavData, err = os.ReadFile(*inPath)
		if err != nil {
			log.Fatalf("failed to read %s: %v", *inPath, err)
		}
	} else {
		wavData, err = generateToneWAV(16000, 1.0, 440.0)
		if err != nil {
			log.Fatalf("failed to generate test audio: %v", err)
		}
		log.Printf("no input file given, generated 1s test tone (%d bytes)", len(wavData))
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		log.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(wavData); err != nil {
		log.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		log.Fatalf("failed to finalize form: %v", err)
	}

	client := &http.Client{Timeout: 120 * time.Second}

	start := time.Now()
	resp, err := client.Post(*addr+"/audio-to-pdf", writer.FormDataContentType(), &body)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		log.Fatalf("server returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	pdfData, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("failed to read response: %v", err)
	}

	if err := os.WriteFile(*outPath, pdfData, 0644); err != nil {
		log.Fatalf("failed to write %s: %v", *outPath, err)
	}

	log.Printf("wrote %s (%d bytes) in %s", *outPath, len(pdfData), time.Since(start).Truncate(time.Millisecond))
}

// generateToneWAV builds a mono 16-bit PCM WAV containing a sine tone.
func generateToneWAV(sampleRate int, seconds, frequency float64) ([]byte, error) {
	numSamples := int(float64(sampleRate) * seconds)
	samples := make([]int16, numSamples)
	amplitude := 16383.0 // half of max int16 to avoid clipping

	for i := 0; i < numSamples; i++ {
		t := float64(i) / float64(sampleRate)
		samples[i] = int16(amplitude * math.Sin(2*math.Pi*frequency*t))
	}

	return audio.Encode(samples, sampleRate, 1)
}
