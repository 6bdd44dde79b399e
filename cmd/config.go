package cmd

import "time"

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	JobToken                string
	KafkaHost               string
	KafkaNotificationsTopic string
	StaleOrderAge           time.Duration
	StaleOrderSchedule      string
	ShiftReminderThreshold  time.Duration
	ShiftReminderTTL        time.Duration
	ShiftReminderSchedule   string
	ReturnWindow            time.Duration
	BatchConcurrency        int
}
