package pipeline

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestLogWriter_MultiLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		log.EXPECT().Info("Processing uno (platform: atmelavr; board: uno)"),
		log.EXPECT().Info("Linking .pio/build/uno/firmware.elf"),
	)

	w := &logWriter{logger: log, level: levelInfo}
	out := []byte("Processing uno (platform: atmelavr; board: uno)\nLinking .pio/build/uno/firmware.elf\n")
	n, err := w.Write(out)
	require.NoError(t, err)
	assert.Equal(t, len(out), n)
	require.NoError(t, w.Close())
}

func TestLogWriter_FragmentedWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		log.EXPECT().Warn("src/main.cpp:4:2: warning: unused variable 'x'"),
		log.EXPECT().Warn("1 warning generated."),
	)

	w := &logWriter{logger: log, level: levelWarn}
	_, _ = w.Write([]byte("src/main.cpp:4:2: warn"))
	_, _ = w.Write([]byte("ing: unused variable 'x'\r\n1 warning"))
	_, _ = w.Write([]byte(" generated."))
	require.NoError(t, w.Close())
}

func TestLogWriter_CloseWithoutPendingOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	w := &logWriter{logger: log, level: levelInfo}
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWriterOrNil(t *testing.T) {
	var w *logWriter
	assert.Nil(t, writerOrNil(w))

	w = &logWriter{}
	var iw io.Writer = w
	assert.Equal(t, iw, writerOrNil(w))
}
