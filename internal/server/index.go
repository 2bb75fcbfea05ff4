package server

// indexHTML is the browser recorder page: it captures microphone audio,
// encodes it as 16 kHz mono PCM WAV and posts it to /audio-to-pdf, then
// offers the returned PDF as a download.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Offline Voice to PDF</title>
    <style>
        body { font-family: Arial; text-align: center; padding: 40px; }
        button {
            padding: 10px 20px; margin: 10px;
            background: #007bff; color: white;
            border: none; border-radius: 5px;
            font-size: 16px; cursor: pointer;
        }
        button:disabled { background: #aaa; cursor: not-allowed; }
    </style>
</head>
<body>

    <h1>Offline Audio to PDF</h1>
    <p>No internet required for transcription</p>

    <button id="record">Start Recording</button>
    <button id="stop" disabled>Stop</button>

    <p id="status"></p>

    <script>
        let audioCtx;
        let processor;
        let source;
        let stream;
        let samples = [];

        const recordBtn = document.getElementById("record");
        const stopBtn = document.getElementById("stop");
        const status = document.getElementById("status");
        const sampleRate = 16000;

        recordBtn.onclick = async () => {
            stream = await navigator.mediaDevices.getUserMedia({ audio: true });
            audioCtx = new AudioContext({ sampleRate: sampleRate });
            source = audioCtx.createMediaStreamSource(stream);
            processor = audioCtx.createScriptProcessor(4096, 1, 1);
            samples = [];

            processor.onaudioprocess = (e) => {
                samples.push(new Float32Array(e.inputBuffer.getChannelData(0)));
            };

            source.connect(processor);
            processor.connect(audioCtx.destination);

            recordBtn.disabled = true;
            stopBtn.disabled = false;
            status.textContent = "Recording...";
        };

        stopBtn.onclick = async () => {
            processor.disconnect();
            source.disconnect();
            stream.getTracks().forEach(t => t.stop());
            await audioCtx.close();

            stopBtn.disabled = true;
            status.textContent = "Processing audio...";

            const wavBlob = encodeWav(samples, sampleRate);

            const formData = new FormData();
            formData.append("file", wavBlob, "audio.wav");

            const response = await fetch("/audio-to-pdf", {
                method: "POST",
                body: formData
            });

            if (!response.ok) {
                status.textContent = "Transcription failed: " + await response.text();
                recordBtn.disabled = false;
                return;
            }

            const pdfBlob = await response.blob();
            const pdfUrl = URL.createObjectURL(pdfBlob);

            const a = document.createElement("a");
            a.href = pdfUrl;
            a.download = "transcribed.pdf";
            a.click();

            status.textContent = "PDF downloaded";
            recordBtn.disabled = false;
        };

        function encodeWav(chunks, rate) {
            let length = 0;
            for (const c of chunks) length += c.length;

            const buffer = new ArrayBuffer(44 + length * 2);
            const view = new DataView(buffer);

            writeString(view, 0, "RIFF");
            view.setUint32(4, 36 + length * 2, true);
            writeString(view, 8, "WAVE");
            writeString(view, 12, "fmt ");
            view.setUint32(16, 16, true);
            view.setUint16(20, 1, true);
            view.setUint16(22, 1, true);
            view.setUint32(24, rate, true);
            view.setUint32(28, rate * 2, true);
            view.setUint16(32, 2, true);
            view.setUint16(34, 16, true);
            writeString(view, 36, "data");
            view.setUint32(40, length * 2, true);

            let offset = 44;
            for (const c of chunks) {
                for (let i = 0; i < c.length; i++) {
                    const s = Math.max(-1, Math.min(1, c[i]));
                    view.setInt16(offset, s < 0 ? s * 0x8000 : s * 0x7fff, true);
                    offset += 2;
                }
            }

            return new Blob([buffer], { type: "audio/wav" });
        }

        function writeString(view, offset, str) {
            for (let i = 0; i < str.length; i++) {
                view.setUint8(offset + i, str.charCodeAt(i));
            }
        }
    </script>

</body>
</html>
`
