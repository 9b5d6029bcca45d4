package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"
)

func init() {
	wg.Add(1)
}

type ipTimeChecker struct {
}

func OOBFetch(url string) []byte {
	resp, err := http.Get(url)
	if resp == nil || err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil
	}

	body, err2 := ioutil.ReadAll(resp.Body)
	if err2 != nil {
		return nil
	}

	return body
}

func (itc *ipTimeChecker) getIPDateTime(rt runtimeConfig) time.Time {
	// get from url or http://worldtimeapi.org/api/ip
	jsonPath := rt.settings.GetString(sIPTime)
	rt.logger.Printf("Fetching time from " + jsonPath)

	results := make(chan []byte, 20)

	go func() {
		results <- OOBFetch(jsonPath)
	}()

	var f interface{}
	err := json.Unmarshal(<-results, &f)

	if err != nil {
		rt.logger.Printf("Error unmarshalling time: " + err.Error())
		return time.Time{}
	}

	itemsMap := f.(map[string]interface{})
	layout := "2006-01-02T15:04:05.999999-07:00"
	t, e := time.Parse(layout, fmt.Sprintf("%v", itemsMap["datetime"]))

	if e != nil {
		rt.logger.Printf("Error parsing time: " + e.Error())
		return time.Time{}
	}

	return t
}

func startTimeWatcher(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "TimeWatcher"}
	go runTimeWatcher(rt)
}

func runTimeWatcher(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("Exiting runTimeWatcher")
	}()

	for true {
		select {
		case <-rt.comms.quit:
			rt.logger.Println("quit from runTimeWatcher")
			return
		default:
		}
		ipTime := rt.timeCheck.getIPDateTime(rt)
		if !ipTime.IsZero() {
			diff := rt.clock.Now().Sub(ipTime)

			// is our clock more than 5m off?
			if diff > time.Minute*5 || diff < time.Minute*-5 {
				rt.comms.effects <- printEffect(sNeedSync, 5*time.Second)
			}
		}
		rt.clock.Sleep(dTimeCheckSleep)
	}
}
