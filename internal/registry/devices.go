package registry

import (
	_ "github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family/holtekfam" // Register Holtek family handler
	_ "github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family/venusfam"  // Register Venus Pro family handler
)
