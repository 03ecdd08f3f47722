// Package featsel implements the add-del feature selection wrapper.
//
// A run makes two greedy passes over the columns of a design matrix. The add pass
// appends every column in order and keeps it only when the cross-validated score
// moves in the preferred direction compared with the previous step. The del pass
// removes every kept column in turn and puts it back (at the end of the set)
// when the removal makes the score worse than the best seen so far.
//
// Scores are the absolute value of the mean fold score, so a metric whose sign
// carries meaning cannot be told apart from its negation.
//
//	w := featsel.NewAddDel(linear.NewLogistic(), metrics.Accuracy, featsel.WithReport(os.Stdout))
//	res, err := w.Run(x, y, cv.DefaultFolds)
package featsel
