package logging

import (
	"os"
	"sync"
)

// LoggerManager хранит логгеры компонентов и общий для них уровень
type LoggerManager struct {
	mu           sync.Mutex
	loggers      map[string]*Logger
	consoleLevel LogLevel
	fileLevel    LogLevel
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

func newLoggerManager() *LoggerManager {
	return &LoggerManager{
		loggers:      make(map[string]*Logger),
		consoleLevel: INFO,
		fileLevel:    DEBUG,
	}
}

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = newLoggerManager()
	})
	return globalManager
}

// Logger возвращает логгер компонента. Новый логгер получает текущий уровень менеджера;
// если файл логов открыть не удалось, пишет только в stdout.
func (lm *LoggerManager) Logger(component string) *Logger {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if l, ok := lm.loggers[component]; ok {
		return l
	}

	l, err := NewLogger(component)
	if err != nil {
		l = NewConsoleLogger(component, os.Stdout)
		l.Warn("Файл логов недоступен, только консоль: %v", err)
	}
	l.SetLevel(lm.consoleLevel, lm.fileLevel)
	lm.loggers[component] = l
	return l
}

// SetLevel задаёт уровень всем уже созданным и будущим логгерам компонентов
func (lm *LoggerManager) SetLevel(console, file LogLevel) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lm.consoleLevel, lm.fileLevel = console, file
	for _, l := range lm.loggers {
		l.SetLevel(console, file)
	}
}

// CloseAll закрывает файлы логгеров и забывает их
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var firstErr error
	for _, l := range lm.loggers {
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	lm.loggers = make(map[string]*Logger)
	return firstErr
}

func GetComponentLogger(component string) *Logger {
	return GetLoggerManager().Logger(component)
}

func GetEngineLogger() *Logger   { return GetComponentLogger("engine") }
func GetPresetsLogger() *Logger  { return GetComponentLogger("presets") }
func GetEventBusLogger() *Logger { return GetComponentLogger("eventbus") }
