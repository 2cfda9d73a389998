package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.SugaredLogger

// Init initialise le logger global (format JSON, timestamps ISO8601)
func Init() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := config.Build()
	if err != nil {
		panic(err)
	}

	Log = l.Sugar()
}

// InitDev initialise le logger en mode développement (sortie lisible)
func InitDev() {
	config := zap.NewDevelopmentConfig()

	l, err := config.Build()
	if err != nil {
		panic(err)
	}

	Log = l.Sugar()
}

// Sync vide les logs en attente
func Sync() {
	if Log != nil {
		Log.Sync()
	}
}
