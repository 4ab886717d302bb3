//go:build integration

package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"

	"github.com/eliteGoblin/focusd/fakeeditor/internal/domain"
	"github.com/eliteGoblin/focusd/fakeeditor/internal/infra"
	"github.com/eliteGoblin/focusd/fakeeditor/test/fixtures"
)

func identityBlock(session *gexec.Session) []string {
	out := strings.TrimSuffix(string(session.Out.Contents()), "\n")
	return strings.Split(out, "\n")
}

func realPath(p string) string {
	resolved, err := filepath.EvalSymlinks(p)
	Expect(err).NotTo(HaveOccurred())
	return resolved
}

var _ = Describe("fakeeditor", func() {
	var (
		tmpDir  string
		workDir string
		signal  *fixtures.SignalDir
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "fakeeditor-integration-*")
		Expect(err).NotTo(HaveOccurred())

		workDir = filepath.Join(tmpDir, "repo")
		Expect(os.MkdirAll(workDir, 0755)).To(Succeed())

		signal, err = fixtures.NewSignalDir(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	start := func(env []string, args ...string) *gexec.Session {
		cmd := exec.Command(editorPath, args...)
		cmd.Dir = workDir
		cmd.Env = env
		session, err := gexec.Start(cmd, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		return session
	}

	Describe("signal file", func() {
		Context("when the harness creates the file after launch", func() {
			It("prints the identity block and exits 0", func() {
				session := start(append(os.Environ(), signal.Env()), "--edit", "msg.txt")

				Eventually(session.Out).Should(gbytes.Say(domain.OutputSentinel))
				Expect(session.ExitCode()).To(Equal(-1), "must still be waiting")

				Expect(<-signal.SignalAfter(200 * time.Millisecond)).To(Succeed())
				Eventually(session, 2*time.Second).Should(gexec.Exit(0))

				lines := identityBlock(session)
				Expect(lines).To(HaveLen(5))
				Expect(lines[0]).To(Equal(strconv.Itoa(session.Command.Process.Pid)))
				Expect(realPath(lines[1])).To(Equal(realPath(workDir)))
				Expect(lines[2:4]).To(Equal([]string{"--edit", "msg.txt"}))
				Expect(lines[4]).To(Equal(domain.OutputSentinel))
			})
		})

		Context("when the file already exists", func() {
			It("exits 0 straight away without touching the file", func() {
				Expect(signal.Signal()).To(Succeed())

				session := start(append(os.Environ(), signal.Env()), "file.txt")
				Eventually(session, 2*time.Second).Should(gexec.Exit(0))

				Expect(signal.Signaled()).To(BeTrue())
				entries, err := os.ReadDir(signal.Path)
				Expect(err).NotTo(HaveOccurred())
				Expect(entries).To(HaveLen(1))
			})
		})

		Context("when the harness never signals", func() {
			It("times out with status 1 no earlier than the budget", func() {
				began := time.Now()
				session := start(append(os.Environ(), signal.Env()))

				Eventually(session, 8*time.Second).Should(gexec.Exit(1))
				Expect(time.Since(began)).To(BeNumerically(">=", domain.DefaultTimeout))
				Expect(session.Err).To(gbytes.Say("timed out waiting for signal file"))
				Expect(session.Out).To(gbytes.Say(domain.OutputSentinel))
			})
		})
	})

	Describe("setup errors", func() {
		It("exits 1 after printing the identity block when the signal dir is unset", func() {
			session := start(fixtures.EnvWithout(infra.SignalDirEnv), "--edit", "msg.txt")

			Eventually(session, 2*time.Second).Should(gexec.Exit(1))
			Expect(identityBlock(session)).To(HaveLen(5))
			Expect(session.Err).To(gbytes.Say(infra.SignalDirEnv))
		})
	})

	Describe("idempotence", func() {
		It("produces the same block apart from the pid", func() {
			Expect(signal.Signal()).To(Succeed())
			env := append(os.Environ(), signal.Env())

			first := start(env, "--edit", "msg.txt", "with space")
			Eventually(first, 2*time.Second).Should(gexec.Exit(0))
			second := start(env, "--edit", "msg.txt", "with space")
			Eventually(second, 2*time.Second).Should(gexec.Exit(0))

			a, b := identityBlock(first), identityBlock(second)
			Expect(a[0]).NotTo(Equal(b[0]))
			Expect(a[1:]).To(Equal(b[1:]))
		})
	})
})
