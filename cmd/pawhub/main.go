// PawHub gateway is the backend-proxying API gateway of the PawHub
// pet-adoption app.
//
// It serves the /api routes the browser calls and forwards them to the
// backend service:
//   - AI background stories, breed and breeding predictions
//   - Diary listing, creation and voice transcription
//   - S3 uploads
//   - OAuth configuration, login redirects and callbacks
//
// Usage:
//
//	# Start the gateway, configured from the environment
//	pawhub run
//
//	# Start with a configuration file
//	pawhub run --config /etc/pawhub/pawhub.yaml
//
//	# Check a configuration file
//	pawhub validate --config pawhub.yaml
//
//	# Build an OAuth login URL from a running gateway
//	pawhub oauth url kakao --gateway http://localhost:3000
//
//	# List diary entries through a running gateway
//	pawhub diary list --user 42 --gateway http://localhost:3000
package main

import "os"

func main() {
	os.Exit(Execute())
}
