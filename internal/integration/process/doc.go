// Package process supervises child processes started by jot.
//
// The only child jot starts is the external editor. It runs in the
// foreground on the controlling terminal, so the supervisor leaves its
// standard streams alone; it tracks the child under a uuid, records how it
// ended, and terminates whatever is still running on Shutdown.
//
//	supervisor := process.NewSupervisor()
//	defer supervisor.Shutdown(2 * time.Second)
//
//	proc, err := supervisor.Start("editor", exec.Command("vi", path))
//	if err != nil {
//	    return err
//	}
//	if x := proc.Wait(); !x.OK() {
//	    return fmt.Errorf("editor: %s", x)
//	}
package process
