package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "induction",
			objectType:  "list",
			identifier:  "active",
			paramsKey:   nil,
			expectedKey: "induction:induction:list:active",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "user",
			objectType:  "profile",
			identifier:  "123",
			paramsKey:   []string{},
			expectedKey: "induction:user:profile:123",
		},
		{
			name:        "with one paramsKey",
			serviceName: "submission",
			objectType:  "progress",
			identifier:  "abc",
			paramsKey:   []string{"param1"},
			expectedKey: "induction:submission:progress:abc:param1",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "chapter",
			objectType:  "video",
			identifier:  "xyz",
			paramsKey:   []string{"param1", "param2", "param3"},
			expectedKey: "induction:chapter:video:xyz:param1_param2_param3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}

func TestActiveInductionsKey(t *testing.T) {
	if got := ActiveInductionsKey(); got != "induction:induction:list:active" {
		t.Errorf("ActiveInductionsKey() = %v", got)
	}
}
