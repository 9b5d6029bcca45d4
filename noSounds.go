package main

// noSounds counts the scan-feedback cues instead of playing them
type noSounds struct {
	beepFreqs  []string
	beepTiming []string
	mp3File    string
	loopMp3    bool
	beepCnt    int
	mp3Cnt     int
	done       chan bool
}

func (ns *noSounds) playIt(rt runtimeConfig, sfreqs []string, timing []string, stop chan bool, done chan bool) {
	rt.logger.Println("STUB: playIt")
	ns.beepFreqs = sfreqs
	ns.beepTiming = timing
	ns.done = done
	// pretend we beeped
	ns.beepCnt++
}

func (ns *noSounds) playMP3(rt runtimeConfig, fName string, loop bool, stop chan bool, done chan bool) {
	rt.logger.Println("STUB: playMP3 " + fName)
	ns.mp3File = fName
	ns.loopMp3 = loop
	ns.done = done
	// pretend we played it
	ns.mp3Cnt++
}
