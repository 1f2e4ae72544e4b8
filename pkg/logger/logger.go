package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger é a interface para logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// LogrusLogger implementa Logger usando o logrus
type LogrusLogger struct {
	log *logrus.Logger
}

// NewLogger cria uma nova instância de Logger
func NewLogger() Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Nível de log configurável via variável de ambiente
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return &LogrusLogger{log: log}
}

// fields converte pares chave/valor em logrus.Fields
func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		f[key] = keysAndValues[i+1]
	}
	return f
}

// Info registra uma mensagem de informação
func (l *LogrusLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).Info(msg)
}

// Error registra uma mensagem de erro
func (l *LogrusLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).Error(msg)
}

// Debug registra uma mensagem de debug
func (l *LogrusLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).Debug(msg)
}

// Warn registra uma mensagem de aviso
func (l *LogrusLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).Warn(msg)
}
