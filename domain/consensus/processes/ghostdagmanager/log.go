package ghostdagmanager

import "github.com/daglabs/ghostdag-consensus/logger"

var log, _ = logger.Get(logger.SubsystemTags.GHDG)
