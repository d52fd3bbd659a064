package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if SubmitResume != "/submit-resume" {
		t.Fatalf("SubmitResume = %q", SubmitResume)
	}
	if Login != "/dashabi/login" {
		t.Fatalf("Login = %q", Login)
	}
	if Dashboard != "/dashabi/dashboard" {
		t.Fatalf("Dashboard = %q", Dashboard)
	}
	if DashboardPrefix != Dashboard+"/" {
		t.Fatalf("DashboardPrefix = %q", DashboardPrefix)
	}
	if JobsLocationPattern != "/jobs/location/{location}" {
		t.Fatalf("JobsLocationPattern = %q", JobsLocationPattern)
	}
}

func TestRouteBuilders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "job", got: Job(" job-1 "), want: "/jobs/job-1"},
		{name: "location", got: JobsLocation("Dubai"), want: "/jobs/location/Dubai"},
		{name: "location with space", got: JobsLocation("Sri Lanka"), want: "/jobs/location/Sri%20Lanka"},
		{name: "location non ascii", got: JobsLocation("迪拜"), want: "/jobs/location/%E8%BF%AA%E6%8B%9C"},
		{name: "language", got: Language("zh"), want: "/lang/zh"},
		{name: "job delete", got: DashboardJobDelete("job-1"), want: "/dashabi/dashboard/jobs/job-1/delete"},
		{name: "resume status", got: DashboardResumeStatus("r/1"), want: "/dashabi/dashboard/resumes/r%2F1/status"},
		{name: "login", got: LoginReturning(""), want: "/dashabi/login"},
		{name: "login returning", got: LoginReturning(SubmitResume), want: "/dashabi/login?return_to=%2Fsubmit-resume"},
		{name: "register", got: RegisterReturning(""), want: "/dashabi/login?mode=register"},
		{name: "register returning", got: RegisterReturning(SubmitResume), want: "/dashabi/login?mode=register&return_to=%2Fsubmit-resume"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if tc.got != tc.want {
				t.Fatalf("got %q, want %q", tc.got, tc.want)
			}
		})
	}
}
