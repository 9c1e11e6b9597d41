package quickanswer

import "errors"

var errNothingToUpdate = errors.New("nothing to update: pass --shortcut and/or --message")
