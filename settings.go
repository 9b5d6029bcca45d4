package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
)

// settings keys
const (
	sI2CBus      = "i2cBus"
	sI2CDevice   = "i2cDevice"
	sI2CSim      = "i2cSimulated"
	sScanDevice  = "scannerDevice"
	sScanSim     = "scannerSimulated"
	sAuthHost    = "authHost"
	sAuthPath    = "authPath"
	sAuthTimeout = "authTimeout"
	sAuthRetries = "authRetries"
	sLogFile     = "logFile"
	sDebug       = "debugDump"
	sLedOK       = "ledOkPin"
	sLedErr      = "ledErrPin"
	sAudio       = "audio"
	sDeniedMP3   = "deniedMP3"
	sMsgHold     = "messageHold"
	sListen      = "apiListen"
	sAPIUser     = "apiUser"
	sAPISecret   = "apiSecret"
	sIPTime      = "ipTimeURL"
)

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
}

func defaultSettings() configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sI2CBus] = 1
	s[sI2CDevice] = byte(0x27)
	s[sScanDevice] = "/dev/hidraw0"
	s[sAuthHost] = "sampletext.com"
	s[sAuthPath] = "/authenticate.php"
	s[sAuthTimeout], _ = time.ParseDuration("10s")
	s[sAuthRetries] = 1
	s[sLogFile] = "/var/log/attendpi.log"
	s[sDebug] = false
	s[sLedOK] = 23
	s[sLedErr] = 24
	s[sAudio] = true
	s[sDeniedMP3] = ""
	s[sMsgHold], _ = time.ParseDuration("3s")
	s[sListen] = ":8080"
	s[sAPIUser] = "attendpi"
	s[sAPISecret] = ""
	s[sIPTime] = "http://worldtimeapi.org/api/ip"

	// off the pi, default to simulated hardware
	sim := true
	if runtime.GOARCH == "arm" {
		sim = false
	}
	s[sI2CSim] = sim
	s[sScanSim] = sim

	return configSettings{settings: s}
}

func (s *configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, _, _, err := jsonparser.Get(data, k); err != nil {
			continue
		}

		var err error
		switch initVal.(type) {
		case uint8:
			var val uint64
			valSigned, err2 := jsonparser.GetInt(data, k)
			if err2 != nil {
				// hex strings like "0x27" are friendlier for i2c addresses
				valString, err3 := jsonparser.GetString(data, k)
				if err3 == nil {
					valSigned, err = strconv.ParseInt(valString, 0, 64)
					val = uint64(valSigned)
				} else {
					err = err3
				}
			} else {
				val = uint64(valSigned)
			}
			if err == nil {
				s.settings[k] = byte(val)
			}
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err == nil {
				s.settings[k] = int(val)
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try true and false as strings
				v, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(v) {
				case "true":
					bVal = true
				case "false":
					bVal = false
				default:
					return err
				}
				err = nil
			}
			s.settings[k] = bVal
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var dur2 time.Duration
				dur2, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = dur2
				}
			}
		case string:
			s.settings[k], err = jsonparser.GetString(data, k)
		default:
			err = fmt.Errorf("Bad type: %T", initVal)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func initSettings() configSettings {
	log.Println("initSettings")

	// defaults
	s := defaultSettings()

	// define our flags first
	configFile := flag.String("config", "/etc/default/attendpi/attendpi.conf", "config file path")

	// parse the flags
	flag.Parse()

	// try to open the config file; a missing file just means defaults
	data, err := ioutil.ReadFile(*configFile)
	if err != nil {
		log.Printf("Could not load conf file '%s', using defaults", *configFile)
		return s
	}

	log.Println(fmt.Sprintf("Reading configuration from '%s'", *configFile))

	// json parse it
	if err := s.settingsFromJSON(data); err != nil {
		log.Fatal(err.Error())
	}

	return s
}

func (s *configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *configSettings) GetByte(key string) byte {
	switch v := s.settings[key].(type) {
	case byte:
		return v
	case int: // cast to byte
		return byte(v)
	default:
		return 0
	}
}

func (s *configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	default:
		return 0
	}
}

func (s *configSettings) Dump() {
	for k, v := range s.settings {
		log.Printf("%s : %T: %v\n", k, v, v)
	}
}
