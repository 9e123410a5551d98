// Package reelrun bootstraps a workspace for the reelrun video pipeline and
// launches the pre-built pipeline container with the workspace mounted in.
package reelrun

import (
	"github.com/streamingfast/logging"
)

var zlog, _ = logging.PackageLogger("reelrun", "github.com/reelrun/reelrun")
