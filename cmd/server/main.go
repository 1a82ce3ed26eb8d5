package main

import (
	_ "github.com/eleven-am/voicenotes/docs"
	"github.com/eleven-am/voicenotes/internal/bootstrap"
)

// @title VoiceNotes API
// @version 1.0.0
// @description Backend for a speech-to-text note-taking app: streams audio over websocket, segments it on a rolling clock, and transcribes each segment locally or in the cloud

// @host api.voicenotes.example.com
// @BasePath /api/v1

func main() {
	bootstrap.Run()
}
