package statusled

// ledDriver is the minimal interface the status LED service needs from
// a GPIO backend.
//
// Close should be best-effort and leave the LED off.
type ledDriver interface {
	SetOn(on bool) error
	Close() error
}
